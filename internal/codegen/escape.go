package codegen

import (
	"fmt"
	"strings"
)

// pyEscape makes s safe inside a double-quoted Python string literal.
// Non-printable bytes become \xNN escapes; everything else passes through
// unchanged so the emitted text stays byte-equivalent to the source value.
func pyEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString(fmt.Sprintf(`\x%02x`, c))
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
