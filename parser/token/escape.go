package token

import (
	"fmt"
	"strings"
)

// UnquoteString decodes the source text of a string literal, including its
// surrounding double quotes.  The escapes \n \t \r \" and \\ are decoded; any
// other escaped character stands for itself.
func UnquoteString(text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", fmt.Errorf("invalid string literal: %s", text)
	}
	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var buf strings.Builder
	buf.Grow(len(body))
	rs := []rune(body)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if c != '\\' {
			buf.WriteRune(c)
			continue
		}
		i++
		if i >= len(rs) {
			return "", fmt.Errorf("unterminated escape sequence in string literal")
		}
		switch rs[i] {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		default:
			buf.WriteRune(rs[i])
		}
	}
	return buf.String(), nil
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// QuoteString is the inverse of UnquoteString for the escapes it decodes.
func QuoteString(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
