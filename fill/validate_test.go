package fill

import (
	"errors"
	"strings"
	"testing"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

func ph(name, typ string) *model.Placeholder {
	return &model.Placeholder{ID: "ph_test", Key: "k", Name: name, Type: typ}
}

func TestValidateCanonicalForms(t *testing.T) {
	tests := []struct {
		field *model.Placeholder
		raw   string
		want  string
	}{
		{ph("Company Name", model.TypeCompany), "  Acme   Corp  ", "Acme Corp"},
		{ph("Purchase Amount", model.TypeAmount), "100000", "$100,000"},
		{ph("Purchase Amount", model.TypeAmount), "250.5", "$250.50"},
		{ph("Post-Money Valuation Cap", model.TypeAmount), "$1,000,000", "$1,000,000"},
		{ph("Discount Rate", model.TypePercentage), "20", "20%"},
		{ph("Discount Rate", model.TypePercentage), "0.2", "20%"},
		{ph("Discount Rate", model.TypePercentage), "20%", "20%"},
		{ph("Discount Rate", model.TypePercentage), "2.5", "2.5%"},
		{ph("Date of SAFE", model.TypeDate), "12/25/2024", "12/25/2024"},
		{ph("Date of SAFE", model.TypeDate), "01/05/2024", "01/05/2024"},
		{ph("Term Months", model.TypeNumber), "12", "12"},
		{ph("State of Incorporation", model.TypeAddress), "de", "Delaware"},
		{ph("State of Incorporation", model.TypeAddress), "ma", "MA"},
		{ph("Governing Law Jurisdiction", model.TypeAddress), "new york", "New York"},
		{ph("Company Address", model.TypeAddress), "123   Main St,  Suite 4", "123 Main St, Suite 4"},
		{ph("Phone Number", model.TypeContact), "5551234567", "(555) 123-4567"},
		{ph("Phone Number", model.TypeContact), "+1 555 123 4567", "15551234567"},
		{ph("Email Address", model.TypeContact), "legal@acme.com", "legal@acme.com"},
		{ph("Number of Shares", model.TypeNumber), "1000", "1,000"},
		{ph("Number of Shares", model.TypeNumber), "12", "12"},
	}

	for _, tt := range tests {
		got, err := Validate(tt.field, tt.raw)
		if err != nil {
			t.Errorf("Validate(%s, %q) unexpected error: %v", tt.field.Name, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Validate(%s, %q) = %q, want %q", tt.field.Name, tt.raw, got, tt.want)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		field    *model.Placeholder
		raw      string
		wantType string
	}{
		{ph("Company Name", model.TypeCompany), "   ", "required"},
		{ph("Purchase Amount", model.TypeAmount), "lots of money", "amount"},
		{ph("Discount Rate", model.TypePercentage), "twenty", "percentage"},
		{ph("Date of SAFE", model.TypeDate), "Jan 1 2024", "date"},
		{ph("Date of SAFE", model.TypeDate), "13/01/2024", "date"},
		{ph("Date of SAFE", model.TypeDate), "12/32/2024", "date"},
		{ph("Date of SAFE", model.TypeDate), "1/5/2024", "date"},
		{ph("Date of SAFE", model.TypeDate), "01/5/2024", "date"},
		{ph("Term Months", model.TypeNumber), "twelve", "number"},
		{ph("Term Months", model.TypeNumber), "0", "number"},
		{ph("Phone Number", model.TypeContact), "123", "phone"},
		{ph("Email Address", model.TypeContact), "not-an-email", "email"},
	}

	for _, tt := range tests {
		_, err := Validate(tt.field, tt.raw)
		if err == nil {
			t.Errorf("Validate(%s, %q) expected error, got none", tt.field.Name, tt.raw)
			continue
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Validate(%s, %q) error is not a ValidationError: %v", tt.field.Name, tt.raw, err)
			continue
		}
		if vErr.Type != tt.wantType {
			t.Errorf("Validate(%s, %q) error type = %q, want %q", tt.field.Name, tt.raw, vErr.Type, tt.wantType)
		}
	}
}

func TestValidateDateMessagesDistinguishCauses(t *testing.T) {
	field := ph("Effective Date", model.TypeDate)

	_, monthErr := Validate(field, "13/01/2024")
	_, dayErr := Validate(field, "12/32/2024")
	_, formatErr := Validate(field, "December 25")

	if monthErr == nil || dayErr == nil || formatErr == nil {
		t.Fatal("all three inputs should fail validation")
	}
	if monthErr.Error() == dayErr.Error() || monthErr.Error() == formatErr.Error() {
		t.Error("month, day and format failures should carry distinct messages")
	}
}

func TestDateRequiresTwoDigitMonthAndDay(t *testing.T) {
	field := ph("Effective Date", model.TypeDate)

	_, err := Validate(field, "1/5/2024")
	if err == nil {
		t.Fatal("single-digit month and day should be rejected, not reformatted")
	}
	if !strings.Contains(err.Error(), "MM/DD/YYYY") {
		t.Errorf("error = %q, want format guidance", err.Error())
	}

	got, err := Validate(field, "01/05/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "01/05/2024" {
		t.Errorf("got %q, want the value unchanged", got)
	}
}

func TestTermMonthsNeverParsedAsDate(t *testing.T) {
	got, err := Validate(ph("Term Months", model.TypeNumber), "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "12" {
		t.Errorf("got %q, want bare count", got)
	}

	// A calendar field with the same answer shape is rejected.
	if _, err := Validate(ph("Effective Date", model.TypeDate), "12"); err == nil {
		t.Error("a bare number should not be a valid date")
	}
}
