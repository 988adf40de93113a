package security_test

import (
	"testing"

	"github.com/therohansaxena/AddressBook/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("password123")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}

	err = security.CheckPassword(hash, "password123")

	if err != nil {
		t.Fatalf("expected the password to verify, got %v", err)
	}

	err = security.CheckPassword(hash, "wrong-password")

	if err == nil {
		t.Fatal("expected a mismatch error for the wrong password")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	first, err := security.HashPassword("password123")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	second, err := security.HashPassword("password123")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ (per-call salt)")
	}
}
