package lockout

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(t *testing.T, store Store) (*Tracker, *fakeClock) {
	t.Helper()
	tr, err := NewTracker(Policy{MaxAttempts: 3, Duration: 30 * time.Second}, store)
	require.NoError(t, err)
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	tr.now = clock.now
	return tr, clock
}

func TestLockoutEveryMaxAttempts(t *testing.T) {
	tr, clock := newTestTracker(t, nil)

	for i := 1; i <= 2; i++ {
		locked, _, err := tr.RecordFailure()
		require.NoError(t, err)
		assert.False(t, locked, "failure %d", i)
		assert.Equal(t, 3-i, tr.AttemptsBeforeLockout())
	}

	locked, until, err := tr.RecordFailure()
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Equal(t, clock.t.Add(30*time.Second), until)
	assert.True(t, tr.Locked())
	assert.Equal(t, 30*time.Second, tr.Remaining())

	clock.advance(10 * time.Second)
	assert.Equal(t, 20*time.Second, tr.Remaining())

	clock.advance(25 * time.Second)
	assert.False(t, tr.Locked())
	assert.Equal(t, time.Duration(0), tr.Remaining())

	// the count keeps going; the next lockout needs another full round
	locked, _, _ = tr.RecordFailure()
	assert.False(t, locked)
	locked, _, _ = tr.RecordFailure()
	assert.False(t, locked)
	locked, _, _ = tr.RecordFailure()
	assert.True(t, locked)
	assert.Equal(t, 6, tr.State().FailedAttempts)
}

func TestResetClearsEverything(t *testing.T) {
	tr, _ := newTestTracker(t, nil)
	for i := 0; i < 3; i++ {
		_, _, _ = tr.RecordFailure()
	}
	require.True(t, tr.Locked())

	require.NoError(t, tr.Reset())
	assert.False(t, tr.Locked())
	assert.Equal(t, State{}, tr.State())
	assert.Equal(t, 3, tr.AttemptsBeforeLockout())
}

func TestSetPolicyKeepsDeadline(t *testing.T) {
	tr, _ := newTestTracker(t, nil)
	for i := 0; i < 3; i++ {
		_, _, _ = tr.RecordFailure()
	}
	tr.SetPolicy(Policy{MaxAttempts: 10, Duration: time.Hour})
	assert.Equal(t, 30*time.Second, tr.Remaining())
	assert.Equal(t, 7, tr.AttemptsBeforeLockout())
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "lockout.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)

	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)

	tr, clock := newTestTracker(t, store)
	for i := 0; i < 3; i++ {
		_, _, err := tr.RecordFailure()
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	st, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, st.FailedAttempts)
	assert.True(t, st.LockedUntil.Equal(clock.t.Add(30*time.Second)))

	require.NoError(t, reopened.Save(State{}))
	st, err = reopened.Load()
	require.NoError(t, err)
	assert.True(t, st.LockedUntil.IsZero())
	assert.Equal(t, 0, st.FailedAttempts)
}
