// Command cakechaind is a thin embedder around the protocol core: it loads
// a genesis file, constructs a chain.Engine, and — in place of the
// gossip/mempool layer the protocol explicitly leaves external — submits a
// directory of pre-built candidate blocks in filename order. It exists to
// exercise the core end-to-end, not to define the protocol.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/cakechain/cakechain/internal/block"
	"github.com/cakechain/cakechain/internal/chain"
	"github.com/cakechain/cakechain/internal/chainerrors"
	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/config"
	"github.com/cakechain/cakechain/internal/logging"
	"github.com/cakechain/cakechain/internal/metrics"
	"github.com/cakechain/cakechain/internal/txn"
)

func main() {
	app := &cli.App{
		Name:  "cakechaind",
		Usage: "run the cakechain protocol core against a scripted block feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "genesis", Value: "genesis/default.yaml", Usage: "path to the genesis allocation file"},
			&cli.StringFlag{Name: "config", Usage: "path to the node config file (optional)"},
			&cli.StringFlag{Name: "blocks", Usage: "directory of JSON-encoded candidate blocks to submit in filename order"},
			&cli.BoolFlag{Name: "serve-metrics", Value: true, Usage: "serve /metrics until interrupted, after processing --blocks"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	nodeCfg, err := config.LoadNode(c.String("config"))
	if err != nil {
		return err
	}
	logger := logging.New(nodeCfg.Logging)

	genesisFile, err := config.LoadGenesis(c.String("genesis"))
	if err != nil {
		return fmt.Errorf("load genesis: %w", err)
	}
	allocations, err := genesisFile.ToChainAllocations()
	if err != nil {
		return fmt.Errorf("resolve genesis allocations: %w", err)
	}

	m := metrics.New()
	engine := chain.Genesis(chaintypes.ChainID(genesisFile.ChainID), allocations)
	m.TipHeight.Set(float64(engine.TipHeight()))

	logger.Info().
		Str("genesis_hash", engine.TipHash().String()).
		Str("state_root", engine.StateRoot().String()).
		Msg("engine initialized at genesis")

	if dir := c.String("blocks"); dir != "" {
		if err := submitBlockFeed(dir, engine, m, logger); err != nil {
			return err
		}
	}

	if !c.Bool("serve-metrics") {
		return nil
	}
	return serveMetrics(c.Context, nodeCfg.MetricsAddr, m, logger)
}

// blockFile is the JSON wire shape for a candidate block read from the
// block feed directory. It is a convenience format for this daemon only —
// it is never used for hashing or signing, which always go through the
// fixed-width canonical encodings in package codec.
type blockFile struct {
	ParentHash string    `json:"parent_hash"`
	Height     uint64    `json:"height"`
	StateRoot  string    `json:"state_root"`
	Txs        []txFile  `json:"txs"`
}

type txFile struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Nonce     uint64 `json:"nonce"`
	Signature string `json:"signature"`
}

func (bf *blockFile) toBlock() (*block.Block, error) {
	parentHash, err := decodeHash(bf.ParentHash)
	if err != nil {
		return nil, fmt.Errorf("parent_hash: %w", err)
	}
	stateRoot, err := decodeHash(bf.StateRoot)
	if err != nil {
		return nil, fmt.Errorf("state_root: %w", err)
	}

	txs := make([]txn.Transaction, len(bf.Txs))
	for i, tf := range bf.Txs {
		from, err := decodeAddress(tf.From)
		if err != nil {
			return nil, fmt.Errorf("tx %d from: %w", i, err)
		}
		to, err := decodeAddress(tf.To)
		if err != nil {
			return nil, fmt.Errorf("tx %d to: %w", i, err)
		}
		sig, err := decodeSignature(tf.Signature)
		if err != nil {
			return nil, fmt.Errorf("tx %d signature: %w", i, err)
		}
		txs[i] = txn.Transaction{
			From:      from,
			To:        to,
			Amount:    chaintypes.Amount(tf.Amount),
			Nonce:     chaintypes.Nonce(tf.Nonce),
			Signature: sig,
		}
	}

	return &block.Block{
		ParentHash: parentHash,
		Height:     chaintypes.BlockHeight(bf.Height),
		Txs:        txs,
		StateRoot:  stateRoot,
	}, nil
}

func decodeAddress(s string) (chaintypes.Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return chaintypes.Address{}, err
	}
	return chaintypes.AddressFromBytes(raw)
}

func decodeSignature(s string) (chaintypes.Signature, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return chaintypes.Signature{}, err
	}
	return chaintypes.SignatureFromBytes(raw)
}

func decodeHash(s string) (chaintypes.Hash32, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return chaintypes.Hash32{}, err
	}
	return chaintypes.Hash32FromBytes(raw)
}

func submitBlockFeed(dir string, engine *chain.Engine, m *metrics.Set, logger zerolog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read block feed directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read block file %s: %w", name, err)
		}
		var bf blockFile
		if err := json.Unmarshal(data, &bf); err != nil {
			return fmt.Errorf("parse block file %s: %w", name, err)
		}
		b, err := bf.toBlock()
		if err != nil {
			return fmt.Errorf("decode block file %s: %w", name, err)
		}

		if err := engine.SubmitBlock(b); err != nil {
			m.BlocksRejected.WithLabelValues(rejectionCause(err)).Inc()
			logger.Warn().Str("file", name).Err(err).Msg("block rejected")
			continue
		}

		m.BlocksAccepted.Inc()
		m.TxApplied.Add(float64(len(b.Txs)))
		m.TipHeight.Set(float64(engine.TipHeight()))
		logger.Info().
			Str("file", name).
			Str("tip_hash", engine.TipHash().String()).
			Uint64("tip_height", uint64(engine.TipHeight())).
			Msg("block accepted")
	}
	return nil
}

// rejectionCause classifies a SubmitBlock error into a short label for the
// blocks_rejected_total{cause} metric.
func rejectionCause(err error) string {
	var badParent *chainerrors.BadParentError
	var badHeight *chainerrors.BadHeightError
	var txInvalid *chainerrors.TxInvalidError
	var badRoot *chainerrors.BadStateRootError
	switch {
	case errors.As(err, &badParent):
		return "bad_parent"
	case errors.As(err, &badHeight):
		return "bad_height"
	case errors.As(err, &txInvalid):
		return "tx_invalid"
	case errors.As(err, &badRoot):
		return "bad_state_root"
	default:
		return "unknown"
	}
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Set, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	return server.Shutdown(ctx)
}
