package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors:
//   - ErrNotFound: entity does not exist in store
//   - ErrAlreadyUsed: an entity with the same key already exists
//   - ErrUnavailable: backing service temporarily unavailable
//
// Input problems are not facts about storage; those use domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrUnavailable = errors.New("unavailable")
)
