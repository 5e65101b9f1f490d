package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies one cache entry: the owning instance, the record type and,
// for single-record entries, the record id. RecordID <= 0 means the entry is
// keyed by type only (e.g. an instance-wide record list).
type Key struct {
	InstanceID int64
	RecordID   int64
	Type       string
}

// String renders the composite key used in snapshots and the entry map.
func (k Key) String() string {
	if k.RecordID > 0 {
		return fmt.Sprintf("instance:%d:%s:%d", k.InstanceID, k.Type, k.RecordID)
	}
	return fmt.Sprintf("instance:%d:%s", k.InstanceID, k.Type)
}

// parseKey is the inverse of Key.String, used on snapshot restore.
func parseKey(s string) (Key, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || parts[0] != "instance" {
		return Key{}, false
	}
	instanceID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Key{}, false
	}
	k := Key{InstanceID: instanceID, Type: parts[2]}
	if len(parts) == 4 {
		recordID, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return Key{}, false
		}
		k.RecordID = recordID
	}
	return k, true
}
