package render

import "strings"

// Slug derives a file-name-safe identifier from a programme name: the
// name is lower-cased and every non-alphanumeric byte becomes an
// underscore.
func Slug(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
