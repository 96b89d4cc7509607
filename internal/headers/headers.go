package headers

import (
	"strings"
)

// Headers is a header map with case-sensitive keys. The first value
// stored for a key wins; later values for the same key are ignored.
// Keys remember the order they were first added in, which is the order
// they are written back out.
type Headers struct {
	values map[string]string
	keys   []string
}

func NewHeaders() *Headers {
	return &Headers{
		values: make(map[string]string),
	}
}

// Get returns the value stored for key
func (h *Headers) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Add stores value under key unless key is already present
func (h *Headers) Add(key, value string) bool {
	if _, ok := h.values[key]; ok {
		return false
	}
	h.values[key] = value
	h.keys = append(h.keys, key)
	return true
}

// Set replaces the value for key
func (h *Headers) Set(key, value string) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

func (h *Headers) Len() int {
	return len(h.keys)
}

// Each calls fn for every header in insertion order
func (h *Headers) Each(fn func(key, value string)) {
	for _, k := range h.keys {
		fn(k, h.values[k])
	}
}

// ParseLine parses a single "Key: value" line (without its line
// terminator) and stores it with Add. Lines without a colon are
// reported as not parsed and leave h unchanged.
func (h *Headers) ParseLine(line string) bool {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return false
	}
	h.Add(key, strings.TrimSpace(value))
	return true
}
