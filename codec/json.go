package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON is stable and portable, and the snapshot schema this module persists
// (string keys, timestamps, small structs) round-trips through it without
// loss. Implement Codec and pass it via options if you need a different
// encoding.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// Persisted snapshots are self-describing (they store the codec name in
// their header) and are opened by selecting the appropriate codec by name.
var Default Codec = JSON{}
