package p2p

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddrBookPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addrbook.db")

	ab, err := OpenAddrBook(path)
	require.NoError(t, err)
	require.NoError(t, ab.Add("10.0.0.1:8333"))
	require.NoError(t, ab.AddWithTime("10.0.0.2:8333", time.Unix(1700000000, 0)))
	require.NoError(t, ab.Close())

	ab, err = OpenAddrBook(path)
	require.NoError(t, err)
	defer ab.Close()

	addrs, err := ab.All()
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.0.1:8333", "10.0.0.2:8333"}, addrs)

	lastSeen, ok := ab.LastSeen("10.0.0.2:8333")
	require.True(t, ok)
	require.Equal(t, int64(1700000000), lastSeen.Unix())
}

func TestAddrBookRemove(t *testing.T) {
	ab, err := OpenAddrBook(filepath.Join(t.TempDir(), "addrbook.db"))
	require.NoError(t, err)
	defer ab.Close()

	require.NoError(t, ab.Add("10.0.0.1:8333"))
	require.NoError(t, ab.Remove("10.0.0.1:8333"))

	addrs, err := ab.All()
	require.NoError(t, err)
	require.Empty(t, addrs)

	_, ok := ab.LastSeen("10.0.0.1:8333")
	require.False(t, ok)
}

func TestAddrBookAddUpdatesLastSeen(t *testing.T) {
	ab, err := OpenAddrBook(filepath.Join(t.TempDir(), "addrbook.db"))
	require.NoError(t, err)
	defer ab.Close()

	require.NoError(t, ab.AddWithTime("10.0.0.1:8333", time.Unix(1000, 0)))
	require.NoError(t, ab.AddWithTime("10.0.0.1:8333", time.Unix(2000, 0)))

	lastSeen, ok := ab.LastSeen("10.0.0.1:8333")
	require.True(t, ok)
	require.Equal(t, int64(2000), lastSeen.Unix())

	addrs, err := ab.All()
	require.NoError(t, err)
	require.Len(t, addrs, 1)
}
