package shellwords

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote reports a quote opened but never closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split tokenizes command text respecting single quotes, double quotes, and
// backslash escapes. Quotes are stripped from the returned tokens; a quoted
// section glued to adjacent bare text stays within one token.
func Split(input string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		started bool
	)

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		case r == '\'':
			started = true
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '\'' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, ErrUnterminatedQuote
			}
			current.WriteString(string(runes[i+1 : end]))
			i = end
		case r == '"':
			started = true
			closed := false
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '\\' && j+1 < len(runes) && (runes[j+1] == '"' || runes[j+1] == '\\') {
					current.WriteRune(runes[j+1])
					j++
					i = j
					continue
				}
				if runes[j] == '"' {
					closed = true
					i = j
					break
				}
				current.WriteRune(runes[j])
				i = j
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
		case r == '\\' && i+1 < len(runes):
			started = true
			current.WriteRune(runes[i+1])
			i++
		default:
			started = true
			current.WriteRune(r)
		}
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// Join renders tokens into a single display string with minimal quoting.
func Join(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, Quote(token))
	}
	return strings.Join(parts, " ")
}

// Quote returns the token unchanged when it is safe to display bare, and a
// double-quoted form otherwise. Embedded double quotes and backslashes are
// escaped; single quotes survive inside double quotes without escaping.
func Quote(token string) string {
	if token == "" {
		return `""`
	}
	if !needsQuoting(token) {
		return token
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range token {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(token string) bool {
	for _, r := range token {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case '"', '\'', '\\', '$', '`', '&', ';', '|', '<', '>', '(', ')', '*', '?', '[', ']', '#', '~', '!':
			return true
		}
	}
	return false
}
