package credential

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	record, err := HashPIN([]byte("1234"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record, "argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := ComparePIN([]byte("1234"), record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePIN([]byte("1235"), record)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ComparePIN(nil, record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPIN([]byte("0000"))
	require.NoError(t, err)
	b, err := HashPIN([]byte("0000"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompareMalformed(t *testing.T) {
	for _, record := range []string{
		"",
		"bcrypt$x",
		"argon2id$v=18$m=65536,t=1,p=4$AAAA$AAAA",
		"argon2id$v=19$garbage$AAAA$AAAA",
		"argon2id$v=19$m=65536,t=1,p=4$!!!$AAAA",
		"argon2id$v=19$m=65536,t=1,p=4$AAAA$",
		"argon2id$v=19$m=65536,t=1,p=0$AAAA$AAAA",
		"argon2id$v=19$m=65536,t=0,p=4$AAAA$AAAA",
		"argon2id$v=19$m=16,t=1,p=4$AAAA$AAAA",
	} {
		_, err := ComparePIN([]byte("1234"), record)
		assert.ErrorIs(t, err, errMalformedRecord, "record %q", record)
	}
}

func TestCheckerValidate(t *testing.T) {
	c := NewChecker(NewMemoryStore(), 4, 6)

	assert.NoError(t, c.ValidatePIN([]byte("1234")))
	assert.NoError(t, c.ValidatePIN([]byte("123456")))
	assert.ErrorIs(t, c.ValidatePIN([]byte("123")), ErrInvalidPIN)
	assert.ErrorIs(t, c.ValidatePIN([]byte("1234567")), ErrInvalidPIN)
	assert.ErrorIs(t, c.ValidatePIN([]byte("12a4")), ErrInvalidPIN)
}

func TestCheckerLifecycle(t *testing.T) {
	c := NewChecker(NewMemoryStore(), 4, 16)

	_, err := c.Check([]byte("1234"))
	assert.ErrorIs(t, err, ErrNotEnrolled)

	enrolled, err := c.Enrolled()
	require.NoError(t, err)
	assert.False(t, enrolled)

	require.NoError(t, c.Enroll([]byte("2580")))

	ok, err := c.Check([]byte("2580"))
	require.NoError(t, err)
	assert.True(t, ok)

	// short entries are checked, not rejected
	ok, err = c.Check([]byte("25"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Clear())
	_, err = c.Check([]byte("2580"))
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCheckerUnreadableRecord(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("not-a-record"))

	_, err := NewChecker(store, 4, 16).Check([]byte("1234"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMalformedRecord))
}

func TestCheckerOutOfRangeParameters(t *testing.T) {
	record, err := HashPIN([]byte("1234"))
	require.NoError(t, err)

	for _, params := range []string{"m=65536,t=1,p=0", "m=65536,t=0,p=4", "m=0,t=1,p=4"} {
		broken := strings.Replace(record, "m=65536,t=1,p=4", params, 1)
		store := NewMemoryStore()
		require.NoError(t, store.Set(broken))

		var ok bool
		require.NotPanics(t, func() {
			ok, err = NewChecker(store, 4, 16).Check([]byte("1234"))
		}, params)
		assert.False(t, ok, params)
		assert.ErrorIs(t, err, errMalformedRecord, params)
	}
}

func TestEnrollRejectsInvalid(t *testing.T) {
	store := NewMemoryStore()
	c := NewChecker(store, 4, 16)

	assert.ErrorIs(t, c.Enroll([]byte("12")), ErrInvalidPIN)
	_, found, _ := store.Get()
	assert.False(t, found)
}

func TestNewStoreMemory(t *testing.T) {
	s, err := NewStore("memory")
	require.NoError(t, err)
	require.NoError(t, s.Set("rec"))

	rec, found, err := s.Get()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "rec", rec)

	require.NoError(t, s.Delete())
	_, found, _ = s.Get()
	assert.False(t, found)
}
