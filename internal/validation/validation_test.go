package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	donationModels "givebridge/internal/donation/models"
	profileModels "givebridge/internal/profile/models"
	dErrors "givebridge/pkg/domain-errors"
)

type RulesSuite struct {
	suite.Suite
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesSuite))
}

func (s *RulesSuite) TestEmail() {
	s.Run("accepts local@domain.tld", func() {
		s.True(IsEmail("ana@ong.org"))
		s.True(IsEmail("  ana.souza@ong.org.br "))
	})
	s.Run("rejects missing tld or at sign", func() {
		s.False(IsEmail("ana@ong"))
		s.False(IsEmail("ana.ong.org"))
		s.False(IsEmail("ana@ong.o"))
		s.False(IsEmail(""))
	})
}

func (s *RulesSuite) TestPassword() {
	s.True(IsPassword("123456", DefaultPolicy()))
	s.False(IsPassword("12345", DefaultPolicy()))
	s.False(IsPassword("1234567", Policy{MinPasswordLength: 8}))
	s.True(IsPassword("123456", Policy{}), "zero policy falls back to default minimum")
}

func (s *RulesSuite) TestPostalCode() {
	s.True(IsPostalCode("01001-000"))
	s.True(IsPostalCode("01001000"))
	s.False(IsPostalCode("0100-1000"))
	s.False(IsPostalCode("1001-000"))
	s.False(IsPostalCode("abcde-fgh"))
	s.Equal("04567000", NormalizePostalCode("04567-000"))
	s.Empty(NormalizePostalCode("4567-000"))
}

func (s *RulesSuite) TestTaxIdentifiers() {
	s.True(IsTaxID("12.345.678/0001-90"))
	s.True(IsTaxID("12345678000190"))
	s.False(IsTaxID("1234567800019"))
	s.True(IsNationalID("123.456.789-09"))
	s.True(IsNationalID("12345678909"))
	s.False(IsNationalID("123.456.789"))
}

func (s *RulesSuite) TestPhone() {
	s.True(IsPhone("(11) 98765-4321"))
	s.True(IsPhone("11 3456-7890"))
	s.True(IsPhone("+55 11 98765-4321"))
	s.False(IsPhone("(11) 88765-4321"), "mobile numbers start with 9")
	s.False(IsPhone("98765-4321"), "area code is required")
	s.False(IsPhone("+1 11 98765-4321"))
	s.False(IsPhone("11 9876a-4321"))
}

func (s *RulesSuite) TestCategory() {
	c, ok := ParseInstitutionCategory("Educação")
	s.True(ok)
	s.Equal(profileModels.CategoryEducation, c)

	c, ok = ParseInstitutionCategory("Assistência Social")
	s.True(ok)
	s.Equal(profileModels.CategorySocialAssist, c)

	_, ok = ParseInstitutionCategory("mineração")
	s.False(ok)
}

type FormsSuite struct {
	suite.Suite
}

func TestFormsSuite(t *testing.T) {
	suite.Run(t, new(FormsSuite))
}

func validInstitutionForm() InstitutionForm {
	return InstitutionForm{
		Name:           "Casa Esperança",
		Category:       "saude",
		TaxID:          "12.345.678/0001-90",
		ResponsibleCPF: "123.456.789-09",
		Phone:          "(11) 98765-4321",
		Email:          "Contato@Esperanca.org",
		Password:       "segredo1",
		PostalCode:     "01001-000",
		AddressNumber:  " 100 ",
	}
}

func (s *FormsSuite) TestInstitutionForm() {
	s.Run("valid form is normalized", func() {
		v, err := ValidateInstitutionForm(validInstitutionForm(), DefaultPolicy())
		s.Require().NoError(err)
		s.Equal(profileModels.CategoryHealth, v.Category)
		s.Equal("12345678000190", v.TaxID)
		s.Equal("12345678909", v.ResponsibleCPF)
		s.Equal("11987654321", v.Phone)
		s.Equal("contato@esperanca.org", v.Email)
		s.Equal("01001000", v.PostalCode)
		s.Equal("100", v.AddressNumber)
	})

	s.Run("reports every violation at once", func() {
		f := InstitutionForm{
			Category:       "mineração",
			TaxID:          "123",
			ResponsibleCPF: "123",
			Phone:          "123",
			Email:          "nope",
			Password:       "123",
			PostalCode:     "123",
		}
		_, err := ValidateInstitutionForm(f, DefaultPolicy())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		fields := FieldErrors(err)
		for _, field := range []string{"name", "category", "tax_id", "responsible_cpf", "phone", "email", "password", "postal_code"} {
			s.True(fields.Has(field), "expected error for %s", field)
		}
		s.Len(fields, 8)
	})

	s.Run("missing fields report presence, not format", func() {
		_, err := ValidateInstitutionForm(InstitutionForm{}, DefaultPolicy())
		s.Require().Error(err)
		for _, fe := range FieldErrors(err) {
			s.Equal("is required", fe.Reason, fe.Field)
		}
	})
}

func (s *FormsSuite) TestDonorForm() {
	s.Run("valid", func() {
		v, err := ValidateDonorForm(DonorForm{DisplayName: " Ana ", Email: "ANA@mail.com", Password: "123456"}, DefaultPolicy())
		s.Require().NoError(err)
		s.Equal("Ana", v.DisplayName)
		s.Equal("ana@mail.com", v.Email)
	})

	s.Run("short password", func() {
		_, err := ValidateDonorForm(DonorForm{DisplayName: "Ana", Email: "ana@mail.com", Password: "12345"}, DefaultPolicy())
		s.Require().Error(err)
		fields := FieldErrors(err)
		s.Require().Len(fields, 1)
		s.Equal("password", fields[0].Field)
	})
}

func (s *FormsSuite) TestLogin() {
	s.NoError(ValidateLogin("ana@mail.com", "x"))
	err := ValidateLogin("ana", "")
	s.Require().Error(err)
	s.True(FieldErrors(err).Has("email"))
	s.True(FieldErrors(err).Has("password"))
}

func validDonationForm() DonationForm {
	return DonationForm{
		DonorID:       uuid.NewString(),
		InstitutionID: uuid.NewString(),
		ProjectID:     "proj-agasalho-2024",
		ProjectTitle:  "Campanha do Agasalho",
		DeliveryMode:  "dropoff",
		Items:         []ItemInput{{Category: "roupas", Quantity: "3"}},
	}
}

func (s *FormsSuite) TestDonation() {
	s.Run("parses items and ids", func() {
		v, err := ValidateDonation(validDonationForm())
		s.Require().NoError(err)
		s.Equal(donationModels.DeliveryDropoff, v.DeliveryMode)
		s.Require().Len(v.Items, 1)
		s.Equal(donationModels.Item{Category: "roupas", Quantity: 3}, v.Items[0])
		s.False(v.DonorID.IsNil())
	})

	s.Run("non numeric quantity is a field error", func() {
		f := validDonationForm()
		f.Items = []ItemInput{{Category: "roupas", Quantity: "três"}}
		_, err := ValidateDonation(f)
		s.Require().Error(err)
		fields := FieldErrors(err)
		s.True(fields.Has("items[0].quantity"))
		s.False(fields.Has("items"), "an invalid line is reported on its own field")
	})

	s.Run("quantity below one is rejected", func() {
		f := validDonationForm()
		f.Items = []ItemInput{{Category: "roupas", Quantity: "0"}, {Category: "livros", Quantity: "-2"}}
		_, err := ValidateDonation(f)
		s.Require().Error(err)
		s.True(FieldErrors(err).Has("items[0].quantity"))
		s.True(FieldErrors(err).Has("items[1].quantity"))
	})

	s.Run("blank lines are skipped", func() {
		f := validDonationForm()
		f.Items = []ItemInput{{}, {Category: "livros", Quantity: " 2 "}, {Quantity: "  "}}
		v, err := ValidateDonation(f)
		s.Require().NoError(err)
		s.Require().Len(v.Items, 1)
		s.Equal(2, v.Items[0].Quantity)
	})

	s.Run("empty item list", func() {
		f := validDonationForm()
		f.Items = nil
		_, err := ValidateDonation(f)
		s.Require().Error(err)
		s.True(FieldErrors(err).Has("items"))
	})

	s.Run("missing category on a filled line", func() {
		f := validDonationForm()
		f.Items = []ItemInput{{Quantity: "1", Description: "casaco"}}
		_, err := ValidateDonation(f)
		s.Require().Error(err)
		s.True(FieldErrors(err).Has("items[0].category"))
	})

	s.Run("bad references and delivery mode", func() {
		f := validDonationForm()
		f.DonorID = "not-a-uuid"
		f.InstitutionID = ""
		f.ProjectID = " "
		f.ProjectTitle = ""
		f.DeliveryMode = "drone"
		_, err := ValidateDonation(f)
		s.Require().Error(err)
		fields := FieldErrors(err)
		for _, field := range []string{"donor_id", "institution_id", "project_id", "project_title", "delivery_mode"} {
			s.True(fields.Has(field), "expected error for %s", field)
		}
	})
}

func (s *FormsSuite) TestPostalCode() {
	s.NoError(ValidatePostalCode("01001-000"))
	s.NoError(ValidatePostalCode("04567000"))

	err := ValidatePostalCode("")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("is required", FieldErrors(err)[0].Reason)

	err = ValidatePostalCode("0100-1000")
	s.Require().Error(err)
	s.True(FieldErrors(err).Has("postal_code"))
}
