package bolt

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/hostparts/internal/psl/domain"
)

func testStore() domain.RuleStore {
	b := domain.NewStoreBuilder()
	b.Add("com", true)
	b.Add("co.uk", true)
	b.Add("*.ck", true)
	b.Add("!www.ck", true)
	b.Add("blogspot.com", false)
	return b.Build()
}

func openTemp(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Open(filepath.Join(t.TempDir(), "rules.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = snap.Close() })
	return snap
}

func TestSnapshot_RoundTrip(t *testing.T) {
	snap := openTemp(t)
	store := testStore()
	savedAt := time.Unix(1723550000, 0)

	require.NoError(t, snap.Save(store, savedAt))

	loaded, ok, err := snap.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, store.Len(), loaded.Len())

	_, found := loaded.Exact("com")
	assert.True(t, found)
	_, found = loaded.Exact("ck")
	assert.True(t, found, "wildcard parent is re-registered as exact on load")
	assert.True(t, loaded.IsWildcardParent("ck"))
	_, found = loaded.Exception("www.ck")
	assert.True(t, found)

	r, found := loaded.Exact("blogspot.com")
	require.True(t, found)
	assert.False(t, r.Public, "private flag survives the round trip")
	r, found = loaded.Exact("com")
	require.True(t, found)
	assert.True(t, r.Public)
}

func TestSnapshot_EmptyDatabase(t *testing.T) {
	snap := openTemp(t)

	_, ok, err := snap.Load()
	require.NoError(t, err)
	assert.False(t, ok, "a fresh database holds no snapshot")
}

func TestSnapshot_Stats(t *testing.T) {
	snap := openTemp(t)
	store := testStore()
	savedAt := time.Unix(1723550000, 0)

	require.NoError(t, snap.Save(store, savedAt))

	st := snap.Stats()
	assert.Equal(t, uint64(store.Len()), st.RuleCount)
	assert.Equal(t, savedAt.Unix(), st.SavedAtUnix)
}

func TestSnapshot_SaveReplacesPrevious(t *testing.T) {
	snap := openTemp(t)

	require.NoError(t, snap.Save(testStore(), time.Unix(1723550000, 0)))

	b := domain.NewStoreBuilder()
	b.Add("org", true)
	small := b.Build()
	require.NoError(t, snap.Save(small, time.Unix(1723551000, 0)))

	loaded, ok, err := snap.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, loaded.Len())
	_, found := loaded.Exact("com")
	assert.False(t, found, "rules from the previous snapshot must not linger")
}
