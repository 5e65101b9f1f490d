package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/codec"
	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// snapshotEnvelope is the self-describing wrapper written to the durable
// store. The envelope itself is always plain JSON; only the payload goes
// through the configured codec and, above the threshold, the compressor.
type snapshotEnvelope struct {
	Codec      string `json:"codec"`
	Compressor string `json:"compressor,omitempty"`
	Compressed bool   `json:"compressed"`
	Checksum   uint32 `json:"checksum"`
	Payload    []byte `json:"payload"`
}

// snapshotEntry is the wire form of one cache entry:
// compositeKey -> {instanceId, recordId, data, timestamp, expiresAt}.
type snapshotEntry struct {
	InstanceID int64        `json:"instanceId"`
	RecordID   *int64       `json:"recordId,omitempty"`
	Data       model.Record `json:"data"`
	Timestamp  time.Time    `json:"timestamp"`
	ExpiresAt  time.Time    `json:"expiresAt"`
}

// encodeSnapshot serializes the entry map into the envelope blob.
// The checksum covers the uncompressed payload.
func encodeSnapshot(entries map[string]*entry, c codec.Codec, comp Compressor, threshold int) ([]byte, error) {
	wire := make(map[string]snapshotEntry, len(entries))
	for key, ent := range entries {
		se := snapshotEntry{
			InstanceID: ent.key.InstanceID,
			Data:       ent.record,
			Timestamp:  ent.timestamp,
			ExpiresAt:  ent.expiresAt,
		}
		if ent.key.RecordID > 0 {
			id := ent.key.RecordID
			se.RecordID = &id
		}
		wire[key] = se
	}

	payload, err := c.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	env := snapshotEnvelope{
		Codec:    c.Name(),
		Checksum: crc32.ChecksumIEEE(payload),
	}
	if comp != nil && len(payload) > threshold {
		compressed, err := comp.Compress(payload)
		if err != nil {
			return nil, fmt.Errorf("compress snapshot: %w", err)
		}
		env.Compressor = comp.Name()
		env.Compressed = true
		env.Payload = compressed
	} else {
		env.Payload = payload
	}

	return json.Marshal(env)
}

// decodeSnapshot is the inverse of encodeSnapshot. A checksum mismatch or an
// unknown codec/compressor is reported as corruption; callers degrade to an
// empty store.
func decodeSnapshot(blob []byte) (map[string]snapshotEntry, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("snapshot envelope: %w", err)
	}

	payload := env.Payload
	if env.Compressed {
		comp, ok := CompressorByName(env.Compressor)
		if !ok {
			return nil, fmt.Errorf("snapshot compressor %q unknown", env.Compressor)
		}
		var err error
		payload, err = comp.Decompress(payload)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
	}

	if crc32.ChecksumIEEE(payload) != env.Checksum {
		return nil, errors.New("snapshot checksum mismatch")
	}

	c, ok := codec.ByName(env.Codec)
	if !ok {
		return nil, fmt.Errorf("snapshot codec %q unknown", env.Codec)
	}

	var wire map[string]snapshotEntry
	if err := c.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return wire, nil
}
