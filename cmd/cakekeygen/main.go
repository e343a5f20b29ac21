// Command cakekeygen is a small utility for external signers: it
// generates an Ed25519 keypair, or prints the signing bytes for a
// hand-specified transfer so a signer that never imports this module can
// still produce a valid signature.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/txn"
)

func main() {
	app := &cli.App{
		Name:  "cakekeygen",
		Usage: "generate keypairs and signing bytes for the cakechain protocol",
		Commands: []*cli.Command{
			generateCommand,
			signingBytesCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var generateCommand = &cli.Command{
	Name:  "generate",
	Usage: "generate a new Ed25519 keypair",
	Action: func(c *cli.Context) error {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return fmt.Errorf("generate key: %w", err)
		}
		fmt.Printf("address:     %s\n", hex.EncodeToString(pub))
		fmt.Printf("private_key: %s\n", hex.EncodeToString(priv))
		return nil
	},
}

var signingBytesCommand = &cli.Command{
	Name:      "signing-bytes",
	Usage:     "print the hex signing bytes for a transfer, for an external signer",
	ArgsUsage: "--from HEX --to HEX --amount N --nonce N --chain-id N",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "from", Required: true},
		&cli.StringFlag{Name: "to", Required: true},
		&cli.Uint64Flag{Name: "amount", Required: true},
		&cli.Uint64Flag{Name: "nonce", Required: true},
		&cli.Uint64Flag{Name: "chain-id", Value: 1},
	},
	Action: func(c *cli.Context) error {
		fromRaw, err := hex.DecodeString(c.String("from"))
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		toRaw, err := hex.DecodeString(c.String("to"))
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		from, err := chaintypes.AddressFromBytes(fromRaw)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := chaintypes.AddressFromBytes(toRaw)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		tx := txn.Transaction{
			From:   from,
			To:     to,
			Amount: chaintypes.Amount(c.Uint64("amount")),
			Nonce:  chaintypes.Nonce(c.Uint64("nonce")),
		}
		fmt.Println(hex.EncodeToString(tx.SigningBytes(chaintypes.ChainID(c.Uint64("chain-id")))))
		return nil
	},
}
