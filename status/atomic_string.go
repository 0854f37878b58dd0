package status

import (
	"sync/atomic"

	"github.com/rivo/uniseg"
)

// MaxStringLen caps stored labels such as the active state name, in bytes
const MaxStringLen = 48

// AtomicString holds a short label; the zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store keeps at most MaxStringLen bytes of val, cut on a grapheme boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = truncate(val, MaxStringLen)
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func truncate(s string, limit int) string {
	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if n+len(cluster) > limit {
			break
		}
		n += len(cluster)
	}
	return s[:n]
}
