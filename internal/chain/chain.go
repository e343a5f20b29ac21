// Package chain implements the chain engine: tip tracking, genesis
// initialization, and block acceptance under the linear chain rule. It is
// the only component that owns mutable state; validation happens against a
// snapshot and is committed atomically only on success.
package chain

import (
	"sync"

	"github.com/cakechain/cakechain/internal/block"
	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/state"
)

// Allocation is one entry of the genesis initial allocation.
type Allocation struct {
	Address chaintypes.Address
	Balance uint64
}

// Engine owns the chain tip and the current state. All mutation happens
// through SubmitBlock, serialized by mu; concurrent SubmitBlock/query
// callers are safe, though the protocol itself only ever requires a single
// logical caller (see package chain's concurrency note in SPEC_FULL.md §5).
type Engine struct {
	mu sync.Mutex

	chainID   chaintypes.ChainID
	tipHash   chaintypes.Hash32
	tipHeight chaintypes.BlockHeight
	state     *state.State
}

// Genesis constructs an engine from a fixed initial allocation. Per the
// genesis constants: height 0, all-zero parent hash, empty transaction
// list, and a state root over the initial allocation. The genesis hash
// becomes the tip immediately; there is no separate "submit genesis" step.
func Genesis(chainID chaintypes.ChainID, allocation []Allocation) *Engine {
	s := state.New()
	for _, a := range allocation {
		s.SetBalance(a.Address, a.Balance)
	}

	genesisBlock := &block.Block{
		ParentHash: chaintypes.Hash32{},
		Height:     0,
		Txs:        nil,
		StateRoot:  s.Root(),
	}

	return &Engine{
		chainID:   chainID,
		tipHash:   genesisBlock.Hash(),
		tipHeight: 0,
		state:     s,
	}
}

// TipHash returns the hash of the current tip block.
func (e *Engine) TipHash() chaintypes.Hash32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tipHash
}

// TipHeight returns the height of the current tip block.
func (e *Engine) TipHeight() chaintypes.BlockHeight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tipHeight
}

// StateRoot returns the state root of the current tip's state.
func (e *Engine) StateRoot() chaintypes.Hash32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Root()
}

// Balance returns a's balance under the current tip's state.
func (e *Engine) Balance(a chaintypes.Address) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.GetBalance(a)
}

// AccountNonce returns a's nonce under the current tip's state.
func (e *Engine) AccountNonce(a chaintypes.Address) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.GetNonce(a)
}

// SubmitBlock validates b against the current tip and state. Only a block
// that extends the current tip — correct parent, height exactly tip+1,
// every transaction valid in order, and a matching post-application state
// root — is accepted: the tip advances and the snapshot it was validated
// against replaces the committed state. Any other block is rejected with
// the first failing cause and the engine is left exactly as it was; forks
// are never materialized.
func (e *Engine) SubmitBlock(b *block.Block) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate := e.state.Snapshot()
	if err := block.Apply(b, e.tipHash, e.tipHeight, candidate, e.chainID); err != nil {
		return err
	}

	e.state = candidate
	e.tipHash = b.Hash()
	e.tipHeight = b.Height
	return nil
}
