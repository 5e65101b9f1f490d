package cache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressorRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("dashwatch snapshot payload "), 100)

	for _, name := range []string{"zstd", "lz4"} {
		t.Run(name, func(t *testing.T) {
			comp, ok := CompressorByName(name)
			require.True(t, ok)
			assert.Equal(t, name, comp.Name())

			compressed, err := comp.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload))

			restored, err := comp.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, restored)
		})
	}
}

func TestCompressorByNameUnknown(t *testing.T) {
	_, ok := CompressorByName("gzip")
	assert.False(t, ok)
}
