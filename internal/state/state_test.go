package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cakechain/cakechain/internal/chaintypes"
)

func addr(b byte) chaintypes.Address {
	var a chaintypes.Address
	a[len(a)-1] = b
	return a
}

func TestDefaultZeroReads(t *testing.T) {
	s := New()
	require.Equal(t, uint64(0), s.GetBalance(addr(1)))
	require.Equal(t, uint64(0), s.GetNonce(addr(1)))
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	s.SetBalance(addr(1), 100)
	s.SetNonce(addr(1), 3)
	assert.Equal(t, uint64(100), s.GetBalance(addr(1)))
	assert.Equal(t, uint64(3), s.GetNonce(addr(1)))

	s.SetBalance(addr(1), 40)
	assert.Equal(t, uint64(40), s.GetBalance(addr(1)))
}

func TestRootInsensitiveToZeroRepresentation(t *testing.T) {
	withExplicitZero := New()
	withExplicitZero.SetBalance(addr(9), 0)
	withExplicitZero.SetNonce(addr(9), 0)

	withoutEntry := New()

	assert.Equal(t, withoutEntry.Root(), withExplicitZero.Root())
}

func TestRootIndependentOfInsertionOrder(t *testing.T) {
	a := New()
	a.SetBalance(addr(1), 10)
	a.SetBalance(addr(2), 20)

	b := New()
	b.SetBalance(addr(2), 20)
	b.SetBalance(addr(1), 10)

	assert.Equal(t, a.Root(), b.Root())
}

func TestRootChangesWithBalance(t *testing.T) {
	a := New()
	a.SetBalance(addr(1), 10)

	b := New()
	b.SetBalance(addr(1), 11)

	assert.NotEqual(t, a.Root(), b.Root())
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New()
	s.SetBalance(addr(1), 10)

	snap := s.Snapshot()
	snap.SetBalance(addr(1), 999)

	assert.Equal(t, uint64(10), s.GetBalance(addr(1)))
	assert.Equal(t, uint64(999), snap.GetBalance(addr(1)))
}

func TestGenesisDeterminism(t *testing.T) {
	// Seed scenario 1: empty initial allocation.
	s := New()
	root := s.Root()
	assert.Equal(t, New().Root(), root)
}
