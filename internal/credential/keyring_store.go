package credential

import (
	"errors"

	"github.com/99designs/keyring"

	"pinpad/internal/constants"
	apperrors "pinpad/internal/errors"
)

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore tries to open the OS keyring via 99designs/keyring.
// If it fails, returns an error so callers can fallback to memory.
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: constants.KeyringServiceName})
	if err != nil {
		return nil, apperrors.NewCredentialError("open_keyring", "no usable keyring backend", err)
	}
	return &keyringStore{ring: r}, nil
}

func (s *keyringStore) Get() (string, bool, error) {
	item, err := s.ring.Get(constants.KeyringPINKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, apperrors.NewCredentialError("get_record", "keyring read failed", err)
	}
	return string(item.Data), true, nil
}

func (s *keyringStore) Set(record string) error {
	err := s.ring.Set(keyring.Item{
		Key:         constants.KeyringPINKey,
		Data:        []byte(record),
		Label:       constants.KeyringServiceName,
		Description: "argon2id PIN record",
	})
	if err != nil {
		return apperrors.NewCredentialError("set_record", "keyring write failed", err)
	}
	return nil
}

func (s *keyringStore) Delete() error {
	if err := s.ring.Remove(constants.KeyringPINKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return apperrors.NewCredentialError("delete_record", "keyring delete failed", err)
	}
	return nil
}
