package contact_test

import (
	"strings"
	"testing"

	"github.com/therohansaxena/AddressBook/internal/domain/contact"
)

func validDTO() contact.ContactDTO {
	return contact.ContactDTO{
		Name:        "John",
		PhoneNumber: "9876543210",
		Email:       "john@example.com",
		Address:     "42 Park Street",
	}
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	errs := contact.Validate(validDTO())

	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"capitalized", "John", ""},
		{"with spaces", "John Doe", ""},
		{"lowercase first letter", "john", "capital letter"},
		{"digits", "John123", "capital letter"},
		{"empty", "", "Name is required"},
		{"blank", "   ", "Name is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dto := validDTO()
			dto.Name = tc.value

			errs := contact.Validate(dto)

			if tc.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}

			if !containsSubstring(errs, tc.wantErr) {
				t.Fatalf("expected an error containing %q, got %v", tc.wantErr, errs)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid starting with 9", "9876543210", true},
		{"valid starting with 6", "6123456789", true},
		{"bad leading digit", "5876543210", false},
		{"too long", "98765432100", false},
		{"too short", "987654321", false},
		{"letters", "98765a3210", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dto := validDTO()
			dto.PhoneNumber = tc.value

			errs := contact.Validate(dto)

			if tc.valid && len(errs) != 0 {
				t.Fatalf("expected valid, got %v", errs)
			}

			if !tc.valid && !containsSubstring(errs, "Phone number") {
				t.Fatalf("expected a phone error, got %v", errs)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain", "john@example.com", true},
		{"plus and dots", "john+tag@mail.example.com", true},
		{"no tld still passes", "john@localhost", true},
		{"missing at", "john.example.com", false},
		{"empty", "", false},
		{"spaces", "john doe@example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dto := validDTO()
			dto.Email = tc.value

			errs := contact.Validate(dto)

			if tc.valid && len(errs) != 0 {
				t.Fatalf("expected valid, got %v", errs)
			}

			if !tc.valid && !containsSubstring(errs, "Invalid email format") {
				t.Fatalf("expected an email error, got %v", errs)
			}
		})
	}
}

func TestValidateReportsAllFailuresTogether(t *testing.T) {
	errs := contact.Validate(contact.ContactDTO{})

	// every field fails at once, nothing short-circuits
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateAddressRequired(t *testing.T) {
	dto := validDTO()
	dto.Address = "  "

	errs := contact.Validate(dto)

	if !containsSubstring(errs, "Address") {
		t.Fatalf("expected an address error, got %v", errs)
	}
}

func containsSubstring(errs []string, sub string) bool {
	for _, e := range errs {
		if strings.Contains(e, sub) {
			return true
		}
	}
	return false
}
