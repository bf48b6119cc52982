package rewrite

import (
	"errors"
	"fmt"
	"strings"

	"tvb/internal/shellwords"
)

// ErrNoOutputFlag reports a captured command without a recognizable output
// flag. Silently keeping the advisory tool's own output location is worse
// than skipping the file, so this aborts the rewrite.
var ErrNoOutputFlag = errors.New("no output flag in encoder command")

// Command holds the encoder invocation as a token sequence plus the
// original textual form for audit logs. Execution uses the token slice
// directly so display quoting never leaks into process arguments.
type Command struct {
	Original string
	Tokens   []string
}

// Parse tokenizes the captured command text.
func Parse(text string) (*Command, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty encoder command")
	}
	tokens, err := shellwords.Split(trimmed)
	if err != nil {
		return nil, fmt.Errorf("tokenize encoder command: %w", err)
	}
	return &Command{Original: trimmed, Tokens: tokens}, nil
}

// Render serializes the current tokens with minimal quoting for logs and
// dry-run display.
func (c *Command) Render() string {
	return shellwords.Join(c.Tokens)
}

// findFlag locates a flag token, supporting both "--flag value" and
// "--flag=value" forms. It returns the flag token index and current value.
func (c *Command) findFlag(names ...string) (idx int, value string, joined bool, ok bool) {
	for i, token := range c.Tokens {
		for _, name := range names {
			if token == name {
				if i+1 < len(c.Tokens) {
					return i, c.Tokens[i+1], false, true
				}
				return i, "", false, true
			}
			if strings.HasPrefix(token, name+"=") {
				return i, token[len(name)+1:], true, true
			}
		}
	}
	return -1, "", false, false
}

// setFlag replaces the value of an existing flag, preserving its form.
func (c *Command) setFlag(idx int, name, value string, joined bool) {
	if joined {
		c.Tokens[idx] = name + "=" + value
		return
	}
	if idx+1 < len(c.Tokens) {
		c.Tokens[idx+1] = value
		return
	}
	c.Tokens = append(c.Tokens, value)
}

// insertFlagAfter inserts "name value" directly after position idx.
func (c *Command) insertFlagAfter(idx int, name, value string) {
	tail := append([]string{name, value}, c.Tokens[idx+1:]...)
	c.Tokens = append(c.Tokens[:idx+1], tail...)
}
