package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSnapshotCorrupt is returned when a stored session value does not decode
// into a usable snapshot.
var ErrSnapshotCorrupt = errors.New("session snapshot corrupt")

// Encode serializes a snapshot to the JSON wire format stored in Redis.
func Encode(snap *Snapshot) ([]byte, error) {
	if snap == nil || snap.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrSnapshotCorrupt)
	}
	return json.Marshal(snap)
}

// Decode parses a stored session value. A value that does not parse, or
// parses without an embedded user id, is corrupt.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if snap.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrSnapshotCorrupt)
	}
	return &snap, nil
}
