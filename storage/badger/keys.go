package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/vidrecall/core"
)

// Key prefixes for the job ledger keyspace
const (
	jobRecordPrefix  = "jobrec"
	jobStartedPrefix = "jobstart"
	latestJobKey     = "joblatest"
)

// makeJobKey generates a key for a job record by ID.
func makeJobKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobRecordPrefix, id))
}

// makeJobStartedKey generates a composite key for the start-time index.
// Format: prefix:timestamp:id
func makeJobStartedKey(startedAt time.Time, id core.ID) []byte {
	prefix := jobStartedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
