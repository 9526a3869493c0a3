// Package reconciliation carries records of cross-entity inconsistencies that
// could not be repaired inline, for offline cleanup.
package reconciliation

import (
	"context"
	"time"

	id "givebridge/pkg/domain"
)

type Kind string

// KindOrphanedAccount is an account whose profile was never created and
// whose compensating deletion also failed.
const KindOrphanedAccount Kind = "orphaned_account"

type Record struct {
	ID                string       `json:"id"`
	Kind              Kind         `json:"kind"`
	AccountID         id.AccountID `json:"account_id"`
	Email             string       `json:"email"`
	Role              string       `json:"role"`
	Reason            string       `json:"reason"`
	CompensationError string       `json:"compensation_error"`
	CreatedAt         time.Time    `json:"created_at"`
}

// Sink stores or forwards reconciliation records.
type Sink interface {
	Emit(ctx context.Context, record Record) error
}
