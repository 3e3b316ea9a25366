package prompt

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 9

// suffixSpace is 36^suffixLen, the number of distinct suffixes.
var suffixSpace = func() uint64 {
	n := uint64(1)
	for i := 0; i < suffixLen; i++ {
		n *= 36
	}
	return n
}()

// NewID returns "prompt-<unix millis>-<random base36>". The random part comes
// from a v4 UUID so ids minted in the same millisecond still differ.
func NewID(now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % suffixSpace
	suffix := strconv.FormatUint(n, 36)
	if pad := suffixLen - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	return fmt.Sprintf("prompt-%d-%s", now.UnixMilli(), suffix)
}
