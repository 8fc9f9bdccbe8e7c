package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a supplied password does not match the
// stored credential.
var ErrMismatch = errors.New("credential mismatch")

// Checker turns a password into its stored form and verifies supplied
// passwords against it. The directory layer never sees which scheme is in
// use, so hashing can be switched on without touching the protocol.
type Checker interface {
	Store(password string) (string, error)
	Compare(stored, supplied string) error
}

// PlainChecker stores passwords verbatim and compares by string equality.
// This matches the legacy on-disk format and is the default scheme.
type PlainChecker struct{}

func (PlainChecker) Store(password string) (string, error) {
	return password, nil
}

func (PlainChecker) Compare(stored, supplied string) error {
	if stored != supplied {
		return ErrMismatch
	}
	return nil
}

// BcryptChecker stores bcrypt hashes. Not compatible with user files
// written under the plain scheme.
type BcryptChecker struct{}

func (BcryptChecker) Store(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptChecker) Compare(stored, supplied string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)); err != nil {
		return ErrMismatch
	}
	return nil
}

// ForScheme selects a checker by name ("plain" or "bcrypt"); anything else
// falls back to plain.
func ForScheme(scheme string) Checker {
	if scheme == "bcrypt" {
		return BcryptChecker{}
	}
	return PlainChecker{}
}
