package security

import "golang.org/x/crypto/bcrypt"

// bcrypt's default work factor is fine for a login path hit a few times a
// minute; bump it here if the hardware ever outruns the attackers.
const hashCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt digest from a plain text password. Each call
// picks a fresh random salt, so the same password never hashes the same twice.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// CheckPassword reports whether plain matches the stored bcrypt digest.
// A non-nil error means mismatch or a malformed digest.
func CheckPassword(digest, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
}
