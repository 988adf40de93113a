package contact

import (
	"errors"
	"regexp"
	"strings"
)

type Contact struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

var ErrNotFound = errors.New("contact not found")

// the wire-side payload for create/update. Validation is manual (see Validate)
// so all failing fields get reported together instead of stopping at the first one.
type ContactDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

var (
	nameRe  = regexp.MustCompile(`^[A-Z][a-zA-Z\s]*$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
)

// Validate runs every field check and returns the full list of failures.
// An empty slice means the payload is valid.
func Validate(dto ContactDTO) []string {
	var errs []string

	if strings.TrimSpace(dto.Name) == "" {
		errs = append(errs, "Name is required")
	} else if !nameRe.MatchString(dto.Name) {
		errs = append(errs, "Name must start with a capital letter and contain only letters and spaces")
	}

	if !phoneRe.MatchString(dto.PhoneNumber) {
		errs = append(errs, "Phone number must be a valid 10-digit number starting with 6-9")
	}

	if !emailRe.MatchString(dto.Email) {
		errs = append(errs, "Invalid email format")
	}

	if strings.TrimSpace(dto.Address) == "" {
		errs = append(errs, "Address cannot be null or empty")
	}

	return errs
}

// conversion helpers between the stored entity and the wire DTO

func ToDTO(c Contact) ContactDTO {
	return ContactDTO{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
	}
}

func FromDTO(dto ContactDTO) Contact {
	return Contact{
		ID:          dto.ID,
		Name:        dto.Name,
		PhoneNumber: dto.PhoneNumber,
		Email:       dto.Email,
		Address:     dto.Address,
	}
}
