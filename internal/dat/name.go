package dat

import "strings"

// NormalizeName converts an archive entry name to its lookup form:
// backslashes become forward slashes and ASCII letters are lowercased.
// Non-ASCII bytes are left untouched.
func NormalizeName(raw string) string {
	b := []byte(raw)
	for i, c := range b {
		switch {
		case c == '\\':
			b[i] = '/'
		case 'A' <= c && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Ext returns the lowercased extension of a normalized name without the dot.
func Ext(name string) string {
	base := name
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i+1:]
	}
	return ""
}
