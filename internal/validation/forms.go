package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	donationModels "givebridge/internal/donation/models"
	profileModels "givebridge/internal/profile/models"
	id "givebridge/pkg/domain"
)

const maxNotesLength = 2000

// InstitutionForm is the raw institution self-registration input.
type InstitutionForm struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	TaxID          string `json:"tax_id"`
	ResponsibleCPF string `json:"responsible_cpf"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PostalCode     string `json:"postal_code"`
	AddressNumber  string `json:"address_number"`
	Complement     string `json:"complement"`
}

// ValidInstitution is an InstitutionForm that passed every rule, in canonical form.
type ValidInstitution struct {
	Name           string
	Category       profileModels.Category
	TaxID          string
	ResponsibleCPF string
	Phone          string
	Email          string
	Password       string
	PostalCode     string
	AddressNumber  string
	Complement     string
}

func ValidateInstitutionForm(f InstitutionForm, p Policy) (*ValidInstitution, error) {
	var c collector
	c.check(present(f.Name), "name", "is required")
	category, ok := ParseInstitutionCategory(f.Category)
	if c.check(present(f.Category), "category", "is required") {
		c.check(ok, "category", "is not a known category")
	}
	if c.check(present(f.TaxID), "tax_id", "is required") {
		c.check(IsTaxID(f.TaxID), "tax_id", "must be a CNPJ with 14 digits")
	}
	if c.check(present(f.ResponsibleCPF), "responsible_cpf", "is required") {
		c.check(IsNationalID(f.ResponsibleCPF), "responsible_cpf", "must be a CPF with 11 digits")
	}
	if c.check(present(f.Phone), "phone", "is required") {
		c.check(IsPhone(f.Phone), "phone", "must have area code and 8 or 9 digits")
	}
	validateCredentials(&c, f.Email, f.Password, p)
	if c.check(present(f.PostalCode), "postal_code", "is required") {
		c.check(IsPostalCode(f.PostalCode), "postal_code", "must have 8 digits")
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return &ValidInstitution{
		Name:           strings.TrimSpace(f.Name),
		Category:       category,
		TaxID:          digits(f.TaxID),
		ResponsibleCPF: digits(f.ResponsibleCPF),
		Phone:          digits(f.Phone),
		Email:          strings.ToLower(strings.TrimSpace(f.Email)),
		Password:       f.Password,
		PostalCode:     NormalizePostalCode(f.PostalCode),
		AddressNumber:  strings.TrimSpace(f.AddressNumber),
		Complement:     strings.TrimSpace(f.Complement),
	}, nil
}

// DonorForm is the raw donor sign-up input.
type DonorForm struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func ValidateDonorForm(f DonorForm, p Policy) (*DonorForm, error) {
	var c collector
	c.check(present(f.DisplayName), "display_name", "is required")
	validateCredentials(&c, f.Email, f.Password, p)
	if err := c.err(); err != nil {
		return nil, err
	}
	return &DonorForm{
		DisplayName: strings.TrimSpace(f.DisplayName),
		Email:       strings.ToLower(strings.TrimSpace(f.Email)),
		Password:    f.Password,
	}, nil
}

// ValidateLogin only checks shape; credential policy is the provider's concern at login.
func ValidateLogin(email, password string) error {
	var c collector
	if c.check(present(email), "email", "is required") {
		c.check(IsEmail(email), "email", "must look like name@domain.tld")
	}
	c.check(password != "", "password", "is required")
	return c.err()
}

// ValidateEmail checks a single email field.
func ValidateEmail(email string) error {
	var c collector
	c.check(IsEmail(email), "email", "must look like name@domain.tld")
	return c.err()
}

// ValidatePostalCode checks the single field the address resolver accepts.
func ValidatePostalCode(postalCode string) error {
	var c collector
	if c.check(present(postalCode), "postal_code", "is required") {
		c.check(IsPostalCode(postalCode), "postal_code", "must have 8 digits")
	}
	return c.err()
}

func validateCredentials(c *collector, email, password string, p Policy) {
	if c.check(present(email), "email", "is required") {
		c.check(IsEmail(email), "email", "must look like name@domain.tld")
	}
	if c.check(password != "", "password", "is required") {
		c.check(IsPassword(password, p), "password", fmt.Sprintf("must have at least %d characters", p.minPassword()))
	}
}

// ItemInput is one donation line as typed by the donor; Quantity is raw text.
type ItemInput struct {
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
}

func (in ItemInput) blank() bool {
	return !present(in.Category) && !present(in.Quantity) && !present(in.Description)
}

// DonationForm is the raw donation submission.
type DonationForm struct {
	DonorID       string      `json:"donor_id"`
	InstitutionID string      `json:"institution_id"`
	ProjectID     string      `json:"project_id"`
	ProjectTitle  string      `json:"project_title"`
	DeliveryMode  string      `json:"delivery_mode"`
	Items         []ItemInput `json:"items"`
	Notes         string      `json:"notes"`
}

// ValidDonation is a DonationForm parsed into domain types.
type ValidDonation struct {
	DonorID       id.AccountID
	InstitutionID id.AccountID
	ProjectID     id.ProjectID
	ProjectTitle  string
	DeliveryMode  donationModels.DeliveryMode
	Items         []donationModels.Item
	Notes         string
}

func ValidateDonation(f DonationForm) (*ValidDonation, error) {
	var c collector
	out := &ValidDonation{
		ProjectTitle: strings.TrimSpace(f.ProjectTitle),
		DeliveryMode: donationModels.DeliveryMode(strings.ToLower(strings.TrimSpace(f.DeliveryMode))),
		Notes:        strings.TrimSpace(f.Notes),
	}

	var err error
	if out.DonorID, err = id.ParseAccountID(strings.TrimSpace(f.DonorID)); err != nil {
		c.add("donor_id", "must identify a donor account")
	}
	if out.InstitutionID, err = id.ParseAccountID(strings.TrimSpace(f.InstitutionID)); err != nil {
		c.add("institution_id", "must identify an institution")
	}
	if out.ProjectID, err = id.ParseProjectID(f.ProjectID); err != nil {
		c.add("project_id", "is required")
	}
	c.check(out.ProjectTitle != "", "project_title", "is required")
	if c.check(f.DeliveryMode != "", "delivery_mode", "is required") {
		c.check(out.DeliveryMode.IsValid(), "delivery_mode", "must be dropoff or pickup")
	}
	c.check(utf8.RuneCountInString(out.Notes) <= maxNotesLength, "notes", fmt.Sprintf("must have at most %d characters", maxNotesLength))
	out.Items = parseItems(&c, f.Items)

	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseItems converts item inputs, recording a field error for every bad line.
// Entirely blank lines are ignored; a quantity that is not a whole number is
// always an error and never defaults.
func parseItems(c *collector, inputs []ItemInput) []donationModels.Item {
	items := make([]donationModels.Item, 0, len(inputs))
	invalid := false
	for i, in := range inputs {
		if in.blank() {
			continue
		}
		field := fmt.Sprintf("items[%d]", i)
		category := strings.TrimSpace(in.Category)
		if !c.check(category != "", field+".category", "is required") {
			invalid = true
		}
		qty, ok := parseQuantity(c, field+".quantity", in.Quantity)
		if !ok {
			invalid = true
		}
		if category != "" && ok {
			items = append(items, donationModels.Item{
				Category:    category,
				Quantity:    qty,
				Description: strings.TrimSpace(in.Description),
			})
		}
	}
	if len(items) == 0 && !invalid {
		c.add("items", "at least one item is required")
	}
	return items
}

func parseQuantity(c *collector, field, raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		c.add(field, "is required")
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.add(field, "must be a whole number")
		return 0, false
	}
	if n < 1 {
		c.add(field, "must be at least 1")
		return 0, false
	}
	return n, true
}
