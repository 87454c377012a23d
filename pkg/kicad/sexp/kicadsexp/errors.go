package kicadsexp

import "fmt"

// SyntaxError reports malformed S-expression text.
type SyntaxError struct {
	Pos    Position
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Reason)
}
