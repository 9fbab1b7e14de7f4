package scene

import (
	"strconv"
	"strings"
	"unicode"
)

// SanitizeName replaces whitespace with '_' and drops the characters reserved by
// property paths ("[ ] . : /").
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case strings.ContainsRune("[].:/", r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameRegistry hands out unique names the way the web loader does: the first use of a
// name is returned unchanged, later uses get "_1", "_2", ...
type nameRegistry struct {
	used map[string]int
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{used: make(map[string]int)}
}

func (r *nameRegistry) unique(original string) string {
	name := SanitizeName(original)
	if n, ok := r.used[name]; ok {
		n++
		r.used[name] = n
		return name + "_" + strconv.Itoa(n)
	}
	r.used[name] = 0
	return name
}
