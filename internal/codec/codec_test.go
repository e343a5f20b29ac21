package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutUint64LERoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, ^uint64(0)} {
		buf := PutUint64LE(nil, v)
		assert.Len(t, buf, 8)
		assert.Equal(t, v, Uint64LE(buf))
	}
}

func TestUint64LEByteOrder(t *testing.T) {
	buf := PutUint64LE(nil, 1)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, buf)
}

func TestDomainTagLengths(t *testing.T) {
	assert.Len(t, TagTransaction, 4)
	assert.Len(t, TagState, 7)
	assert.Len(t, TagBlock, 7)
}
