// Package state manages the in-memory ledger: per-address balances and
// nonces, with default-zero semantics for absent entries, and the
// deterministic state-root hash the block module checks every block
// against.
package state

import (
	"sort"
	"sync"

	"github.com/cakechain/cakechain/internal/chaincrypto"
	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/codec"
)

// entry holds one account's non-default fields. A State never stores an
// entry whose balance and nonce are both zero — such an address is simply
// absent, and get_balance/get_nonce already return 0 for absent keys. This
// keeps "absent" and "explicit zero" indistinguishable at the one place
// where it would otherwise matter: state-root computation.
type entry struct {
	balance uint64
	nonce   uint64
}

// State is the account-based ledger: two logical mappings, address to
// balance and address to nonce, held together per-address for convenience.
// It is guarded by a single mutex; State is the exclusively-owned resource
// of a chain.Engine, but is safe to call directly in tests and tooling.
type State struct {
	mu      sync.RWMutex
	entries map[chaintypes.Address]entry
}

// New returns an empty State.
func New() *State {
	return &State{entries: make(map[chaintypes.Address]entry)}
}

// GetBalance returns the balance of a, or 0 if a has never been touched.
func (s *State) GetBalance(a chaintypes.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[a].balance
}

// GetNonce returns the nonce of a, or 0 if a has never been touched.
func (s *State) GetNonce(a chaintypes.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[a].nonce
}

// SetBalance overwrites a's balance. Setting both balance and nonce to 0
// removes the entry entirely, which is semantically a no-op given the
// default-zero read and keeps the map from accumulating dead zero entries.
func (s *State) SetBalance(a chaintypes.Address, v uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[a]
	e.balance = v
	s.storeOrPrune(a, e)
}

// SetNonce overwrites a's nonce, with the same zero-pruning behavior as
// SetBalance.
func (s *State) SetNonce(a chaintypes.Address, v uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[a]
	e.nonce = v
	s.storeOrPrune(a, e)
}

func (s *State) storeOrPrune(a chaintypes.Address, e entry) {
	if e.balance == 0 && e.nonce == 0 {
		delete(s.entries, a)
		return
	}
	s.entries[a] = e
}

// Snapshot returns an independent deep copy of the state, for the block
// module to validate a candidate block against without mutating the
// committed state until every check has passed.
func (s *State) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := New()
	for a, e := range s.entries {
		cp.entries[a] = e
	}
	return cp
}

// Root computes the deterministic state-root hash:
//
//	"STATEv1" || count_le(u64) || for each address in ascending byte order:
//	    address(32) || balance_le(u64) || nonce_le(u64)
//
// Only addresses with a non-zero balance or nonce are included, which
// makes the root insensitive to whether a zero-valued entry is stored
// explicitly or left absent — State never stores one, but the algorithm
// does not depend on that; it filters during serialization regardless.
func (s *State) Root() chaintypes.Hash32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addrs := make([]chaintypes.Address, 0, len(s.entries))
	for a, e := range s.entries {
		if e.balance == 0 && e.nonce == 0 {
			continue
		}
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })

	buf := make([]byte, 0, len(codec.TagState)+8+len(addrs)*(chaintypes.AddressSize+16))
	buf = append(buf, codec.TagState...)
	buf = codec.PutUint64LE(buf, uint64(len(addrs)))
	for _, a := range addrs {
		e := s.entries[a]
		buf = codec.PutAddress(buf, a)
		buf = codec.PutUint64LE(buf, e.balance)
		buf = codec.PutUint64LE(buf, e.nonce)
	}
	return chaincrypto.SHA256(buf)
}
