package engine

import (
	"hash/fnv"
	"io"
	"strings"

	"github.com/kolah/oaslint/internal/result"
)

// Fingerprint computes a stable deduplication key for a violation so
// the same underlying issue reported by two overlapping rule sets is
// merged by the engine adapter. Line numbers are excluded: the same
// issue can be attributed to slightly different lines by different
// rule sources.
func Fingerprint(m result.Message) uint64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, m.Rule)
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, strings.Join(m.Path, "/"))
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, m.Message)
	return h.Sum64()
}
