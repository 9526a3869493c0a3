package models

import (
	"time"

	addressModels "givebridge/internal/address/models"
	auth "givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
)

// Category is the fixed set of institution areas of activity.
type Category string

const (
	CategoryEducation    Category = "educacao"
	CategoryHealth       Category = "saude"
	CategorySocialAssist Category = "assistencia_social"
	CategoryEnvironment  Category = "meio_ambiente"
	CategoryAnimals      Category = "animais"
	CategoryCulture      Category = "cultura"
	CategorySport        Category = "esporte"
	CategoryFood         Category = "alimentacao"
	CategoryHousing      Category = "moradia"
	CategoryOther        Category = "outros"
)

var categories = map[Category]struct{}{
	CategoryEducation:    {},
	CategoryHealth:       {},
	CategorySocialAssist: {},
	CategoryEnvironment:  {},
	CategoryAnimals:      {},
	CategoryCulture:      {},
	CategorySport:        {},
	CategoryFood:         {},
	CategoryHousing:      {},
	CategoryOther:        {},
}

func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// DonorProfile is owned 1:1 by a donor account.
//
// Invariants:
//   - Points is non-negative and starts at zero
//   - Points only grows through the atomic increment at the storage layer
type DonorProfile struct {
	AccountID id.AccountID `json:"account_id"`
	Points    int          `json:"points"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewDonorProfile(accountID id.AccountID, now time.Time) *DonorProfile {
	return &DonorProfile{AccountID: accountID, Points: 0, CreatedAt: now}
}

// Stats are the aggregate counters shown on the institution dashboard. They
// start at zero and are only mutated by institution-side processing.
type Stats struct {
	DonationsReceived int   `json:"donations_received"`
	AmountRaised      int64 `json:"amount_raised"`
	PendingDeliveries int   `json:"pending_deliveries"`
	ActiveDonors      int   `json:"active_donors"`
}

// InstitutionProfile is owned 1:1 by an institution account.
type InstitutionProfile struct {
	AccountID      id.AccountID          `json:"account_id"`
	Name           string                `json:"name"`
	Category       Category              `json:"category"`
	TaxID          string                `json:"tax_id"`
	ResponsibleCPF string                `json:"responsible_cpf"`
	Phone          string                `json:"phone"`
	Email          string                `json:"email"`
	PostalCode     string                `json:"postal_code"`
	AddressNumber  string                `json:"address_number,omitempty"`
	Complement     string                `json:"complement,omitempty"`
	Address        addressModels.Address `json:"address"`
	Stats          Stats                 `json:"stats"`
	RegisteredAt   time.Time             `json:"registered_at"`
	Active         bool                  `json:"active"`
}

// InstitutionData is everything the registration flow supplies for a new profile.
type InstitutionData struct {
	Name           string
	Category       Category
	TaxID          string
	ResponsibleCPF string
	Phone          string
	Email          string
	PostalCode     string
	AddressNumber  string
	Complement     string
	Address        addressModels.Address
}

// NewInstitutionProfile builds the initial profile: zeroed stats, active.
func NewInstitutionProfile(accountID id.AccountID, data InstitutionData, now time.Time) *InstitutionProfile {
	return &InstitutionProfile{
		AccountID:      accountID,
		Name:           data.Name,
		Category:       data.Category,
		TaxID:          data.TaxID,
		ResponsibleCPF: data.ResponsibleCPF,
		Phone:          data.Phone,
		Email:          data.Email,
		PostalCode:     data.PostalCode,
		AddressNumber:  data.AddressNumber,
		Complement:     data.Complement,
		Address:        data.Address,
		Stats:          Stats{},
		RegisteredAt:   now,
		Active:         true,
	}
}

// Profile is the result of a role-directed lookup; exactly one field is set.
type Profile struct {
	Role        auth.Role           `json:"role"`
	Donor       *DonorProfile       `json:"donor,omitempty"`
	Institution *InstitutionProfile `json:"institution,omitempty"`
}
