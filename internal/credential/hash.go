package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyBytes     = 32
	saltBytes    = 16
)

var errMalformedRecord = errors.New("malformed PIN record")

// HashPIN derives an argon2id record for pin in the PHC string layout:
// argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
func HashPIN(pin []byte) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey(pin, salt, argonTime, argonMemory, argonThreads, keyBytes)
	defer zero(key)

	return fmt.Sprintf("argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// ComparePIN reports whether pin matches record. The comparison of the
// derived keys is constant time.
func ComparePIN(pin []byte, record string) (bool, error) {
	parts := strings.Split(record, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return false, errMalformedRecord
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errMalformedRecord
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errMalformedRecord
	}
	// argon2 panics below these bounds
	if threads == 0 || time == 0 || memory < 8*uint32(threads) {
		return false, errMalformedRecord
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errMalformedRecord
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false, errMalformedRecord
	}

	got := argon2.IDKey(pin, salt, time, memory, threads, uint32(len(want)))
	defer zero(got)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
