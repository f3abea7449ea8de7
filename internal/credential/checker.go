package credential

import (
	"errors"
	"fmt"

	apperrors "pinpad/internal/errors"
)

var (
	// ErrNotEnrolled is returned by Check when no PIN has been set.
	ErrNotEnrolled = errors.New("no PIN enrolled")
	// ErrInvalidPIN is returned by Enroll for PINs outside the policy.
	ErrInvalidPIN = errors.New("invalid PIN")
)

// Checker enrolls and checks the device PIN against a Store.
type Checker struct {
	store  Store
	minLen int
	maxLen int
}

// NewChecker creates a Checker enforcing PIN lengths in [minLen, maxLen].
func NewChecker(store Store, minLen, maxLen int) *Checker {
	return &Checker{store: store, minLen: minLen, maxLen: maxLen}
}

// ValidatePIN checks that pin is digits only and within the length bounds.
func (c *Checker) ValidatePIN(pin []byte) error {
	if len(pin) < c.minLen || len(pin) > c.maxLen {
		return fmt.Errorf("%w: length must be between %d and %d digits", ErrInvalidPIN, c.minLen, c.maxLen)
	}
	for _, b := range pin {
		if b < '0' || b > '9' {
			return fmt.Errorf("%w: only digits are allowed", ErrInvalidPIN)
		}
	}
	return nil
}

// Enroll replaces the stored PIN.
func (c *Checker) Enroll(pin []byte) error {
	if err := c.ValidatePIN(pin); err != nil {
		return err
	}
	record, err := HashPIN(pin)
	if err != nil {
		return apperrors.NewCredentialError("enroll", "could not derive PIN record", err)
	}
	return c.store.Set(record)
}

// Check compares entry with the stored PIN. Length policy is not applied
// here; a short entry simply does not match.
func (c *Checker) Check(entry []byte) (bool, error) {
	record, found, err := c.store.Get()
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrNotEnrolled
	}
	ok, err := ComparePIN(entry, record)
	if err != nil {
		return false, apperrors.NewCredentialError("check", "stored PIN record is unreadable", err)
	}
	return ok, nil
}

// Enrolled reports whether a PIN is stored.
func (c *Checker) Enrolled() (bool, error) {
	_, found, err := c.store.Get()
	return found, err
}

// Clear removes the stored PIN.
func (c *Checker) Clear() error {
	return c.store.Delete()
}
