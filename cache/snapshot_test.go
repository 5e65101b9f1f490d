package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryllundy/gitlab-dashwatch-sub001/codec"
	"github.com/daryllundy/gitlab-dashwatch-sub001/testutil"
)

func snapshotFixture() map[string]*entry {
	now := time.Now()
	entries := make(map[string]*entry)
	for _, id := range []int64{1, 2, 3} {
		key := Key{InstanceID: 1, RecordID: id, Type: "project"}
		entries[key.String()] = &entry{
			key:       key,
			record:    testutil.Record(id, 1, "proj"),
			timestamp: now,
			expiresAt: now.Add(time.Hour),
			size:      100,
		}
	}
	return entries
}

func TestSnapshotRoundTrip(t *testing.T) {
	entries := snapshotFixture()

	blob, err := encodeSnapshot(entries, codec.Default, nil, 0)
	require.NoError(t, err)

	wire, err := decodeSnapshot(blob)
	require.NoError(t, err)
	require.Len(t, wire, len(entries))

	for ks, ent := range entries {
		se, ok := wire[ks]
		require.True(t, ok, "missing key %s", ks)
		assert.Equal(t, ent.record, se.Data)
		assert.Equal(t, ent.key.InstanceID, se.InstanceID)
		require.NotNil(t, se.RecordID)
		assert.Equal(t, ent.key.RecordID, *se.RecordID)
		assert.WithinDuration(t, ent.expiresAt, se.ExpiresAt, time.Millisecond)
	}
}

func TestSnapshotRoundTripCompressed(t *testing.T) {
	entries := snapshotFixture()
	comp, _ := CompressorByName("zstd")

	// Threshold zero forces compression.
	blob, err := encodeSnapshot(entries, codec.Default, comp, 0)
	require.NoError(t, err)

	var env snapshotEnvelope
	require.NoError(t, json.Unmarshal(blob, &env))
	assert.True(t, env.Compressed)
	assert.Equal(t, "zstd", env.Compressor)

	wire, err := decodeSnapshot(blob)
	require.NoError(t, err)
	assert.Len(t, wire, len(entries))
}

func TestDecodeSnapshotChecksumMismatch(t *testing.T) {
	blob, err := encodeSnapshot(snapshotFixture(), codec.Default, nil, 0)
	require.NoError(t, err)

	var env snapshotEnvelope
	require.NoError(t, json.Unmarshal(blob, &env))
	env.Checksum++
	tampered, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = decodeSnapshot(tampered)
	assert.ErrorContains(t, err, "checksum")
}

func TestDecodeSnapshotUnknownCodec(t *testing.T) {
	blob, err := encodeSnapshot(snapshotFixture(), codec.Default, nil, 0)
	require.NoError(t, err)

	var env snapshotEnvelope
	require.NoError(t, json.Unmarshal(blob, &env))
	env.Codec = "msgpack"
	tampered, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = decodeSnapshot(tampered)
	assert.Error(t, err)
}
