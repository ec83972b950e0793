package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// sequence generates human-readable ids of the form PREFIX + 5-digit
// zero-padded number (APP00001, INT00042, ...). The counter is
// initialized by observing every id already present at load time, so
// restarts never reuse an id.
type sequence struct {
	prefix string
	next   int
}

func newSequence(prefix string) *sequence {
	return &sequence{prefix: prefix, next: 1}
}

// observe advances the counter past an existing id. Malformed ids are
// ignored.
func (s *sequence) observe(id string) {
	if !strings.HasPrefix(id, s.prefix) {
		return
	}
	value, err := strconv.Atoi(id[len(s.prefix):])
	if err != nil {
		return
	}
	if value >= s.next {
		s.next = value + 1
	}
}

func (s *sequence) nextID() string {
	id := fmt.Sprintf("%s%05d", s.prefix, s.next)
	s.next++
	return id
}

func (s *sequence) reset() {
	s.next = 1
}
