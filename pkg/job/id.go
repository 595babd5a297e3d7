package job

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// ID prefixes in use. Job ids and agent session ids share one scheme so both
// satisfy the agent runtime's session-id constraints.
const (
	JobIDPrefix     = "job"
	SessionIDPrefix = "sess"
)

// MinSessionIDLen is the minimum session identifier length accepted by the
// agent runtime.
const MinSessionIDLen = 33

// NewID returns "<prefix>-<hex millis>-<32 hex chars>" with the random part
// drawn from crypto/rand. The shortest possible result is well over
// MinSessionIDLen characters.
func NewID(prefix string) string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("job: read random bytes: %v", err))
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 16)
	return prefix + "-" + ts + "-" + hex.EncodeToString(buf[:])
}
