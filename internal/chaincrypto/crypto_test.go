package chaincrypto

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cakechain/cakechain/internal/chaintypes"
)

func TestSHA256KnownLength(t *testing.T) {
	h := SHA256([]byte("cakechain"))
	assert.Len(t, h[:], 32)
}

func TestVerifyEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	a, err := chaintypes.AddressFromBytes(pub)
	require.NoError(t, err)

	msg := []byte("transfer 40 to bob")
	sigBytes := ed25519.Sign(priv, msg)
	sig, err := chaintypes.SignatureFromBytes(sigBytes)
	require.NoError(t, err)

	assert.True(t, VerifyEd25519(a, msg, sig))
}

func TestVerifyEd25519RejectsTamperedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	a, err := chaintypes.AddressFromBytes(pub)
	require.NoError(t, err)

	sigBytes := ed25519.Sign(priv, []byte("original"))
	sig, err := chaintypes.SignatureFromBytes(sigBytes)
	require.NoError(t, err)

	assert.False(t, VerifyEd25519(a, []byte("tampered"), sig))
}
