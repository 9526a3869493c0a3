package models

import (
	"time"

	id "givebridge/pkg/domain"
)

// DeliveryMode says who moves the goods.
type DeliveryMode string

const (
	DeliveryDropoff DeliveryMode = "dropoff" // donor delivers
	DeliveryPickup  DeliveryMode = "pickup"  // institution collects
)

func (m DeliveryMode) IsValid() bool {
	return m == DeliveryDropoff || m == DeliveryPickup
}

// Status of a donation request. Only the initial status is set here; later
// transitions belong to institution-side processing.
type Status string

const (
	StatusPending              Status = "pending"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
)

// StatusFor derives the initial status from the delivery mode.
func StatusFor(mode DeliveryMode) Status {
	if mode == DeliveryDropoff {
		return StatusAwaitingConfirmation
	}
	return StatusPending
}

// Item is one line of an in-kind donation.
type Item struct {
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// DonationRequest is the durable record of a submitted donation.
//
// Invariants:
//   - Items has at least one entry with non-empty Category and Quantity >= 1
//   - ProjectTitle is a snapshot taken at submission time
//   - Donor and institution are weak references by id
type DonationRequest struct {
	ID            id.DonationID `json:"id"`
	DonorID       id.AccountID  `json:"donor_id"`
	InstitutionID id.AccountID  `json:"institution_id"`
	ProjectID     id.ProjectID  `json:"project_id"`
	ProjectTitle  string        `json:"project_title"`
	DeliveryMode  DeliveryMode  `json:"delivery_mode"`
	Items         []Item        `json:"items"`
	Notes         string        `json:"notes,omitempty"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TotalQuantity sums item quantities.
func (d *DonationRequest) TotalQuantity() int {
	total := 0
	for _, it := range d.Items {
		total += it.Quantity
	}
	return total
}
