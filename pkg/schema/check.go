// Package schema declares form fields the way a persistence layer declares
// columns. Declarations check themselves and derive the form fields an
// auto-generated form uses, including ArrayField, which derives a dynamic
// input.
package schema

import (
	"fmt"
	"strings"
)

// Level is the severity of a CheckMessage.
type Level int

const (
	LevelWarning Level = iota + 1
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// CheckMessage reports one declaration problem.
type CheckMessage struct {
	Level  Level  `json:"level"`
	ID     string `json:"id"`
	Msg    string `json:"msg"`
	Hint   string `json:"hint,omitempty"`
	Object string `json:"object,omitempty"`
}

// Error implements error.
func (m CheckMessage) Error() string {
	var b strings.Builder
	if m.Object != "" {
		b.WriteString(m.Object)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "(%s) %s", m.ID, m.Msg)
	if m.Hint != "" {
		b.WriteString("\n\tHINT: ")
		b.WriteString(m.Hint)
	}
	return b.String()
}

// IsSerious reports whether the message should stop a model from loading.
func (m CheckMessage) IsSerious() bool {
	return m.Level >= LevelError
}

// Serious filters messages down to errors.
func Serious(messages []CheckMessage) []CheckMessage {
	var out []CheckMessage
	for _, msg := range messages {
		if msg.IsSerious() {
			out = append(out, msg)
		}
	}
	return out
}

func checkError(id, object, msg, hint string) CheckMessage {
	return CheckMessage{Level: LevelError, ID: id, Msg: msg, Hint: hint, Object: object}
}
