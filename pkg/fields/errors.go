package fields

import (
	"errors"
	"sort"
	"strings"
)

// Error codes understood by Spec.Message.
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeMaxLength     = "max_length"
	CodeMinLength     = "min_length"
	CodeMaxValue      = "max_value"
	CodeMinValue      = "min_value"
	CodeInvalidChoice = "invalid_choice"
	CodeEmail         = "email"
	CodeURL           = "url"
)

var defaultMessages = map[string]string{
	CodeRequired:      "This field is required.",
	CodeInvalid:       "Enter a valid value.",
	CodeMaxLength:     "Ensure this value has at most {limit} characters (it has {count}).",
	CodeMinLength:     "Ensure this value has at least {limit} characters (it has {count}).",
	CodeMaxValue:      "Ensure this value is less than or equal to {limit}.",
	CodeMinValue:      "Ensure this value is greater than or equal to {limit}.",
	CodeInvalidChoice: "Select a valid choice. {value} is not one of the available choices.",
	CodeEmail:         "Enter a valid email address.",
	CodeURL:           "Enter a valid URL.",
}

// DefaultMessage returns the built-in message template for code.
func DefaultMessage(code string) string {
	if msg, ok := defaultMessages[code]; ok {
		return msg
	}
	return defaultMessages[CodeInvalid]
}

// FormatMessage substitutes {name} placeholders in a message template.
func FormatMessage(template string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Message is a single coded validation message.
type Message struct {
	Code string `json:"code"`
	Text string `json:"message"`
}

// ValidationError is the error tree produced by Clean. A node carries its
// own messages, per-row children (for repeated fields) and per-sub-field
// children (for grouped fields). All failures found during one Clean call
// are kept.
type ValidationError struct {
	messages []Message
	items    map[int]*ValidationError
	names    []string
	fields   map[string]*ValidationError
}

// NewError returns a validation error with a single message.
func NewError(code, text string) *ValidationError {
	return &ValidationError{messages: []Message{{Code: code, Text: text}}}
}

// RequiredError returns the error reported when a required value is missing.
func RequiredError(text string) *ValidationError {
	if text == "" {
		text = DefaultMessage(CodeRequired)
	}
	return NewError(CodeRequired, text)
}

// AsValidationError converts err into a validation error tree. Errors that
// are not validation errors become a single "invalid" message.
func AsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr
	}
	return NewError(CodeInvalid, err.Error())
}

// Add appends a message to this node.
func (e *ValidationError) Add(code, text string) *ValidationError {
	e.messages = append(e.messages, Message{Code: code, Text: text})
	return e
}

// SetItem attaches the error of row index. Nil errors are ignored.
func (e *ValidationError) SetItem(index int, err *ValidationError) *ValidationError {
	if err == nil || err.Empty() {
		return e
	}
	if e.items == nil {
		e.items = make(map[int]*ValidationError)
	}
	e.items[index] = err
	return e
}

// SetField attaches the error of sub-field name, preserving insertion order.
func (e *ValidationError) SetField(name string, err *ValidationError) *ValidationError {
	if err == nil || err.Empty() {
		return e
	}
	if e.fields == nil {
		e.fields = make(map[string]*ValidationError)
	}
	if _, exists := e.fields[name]; !exists {
		e.names = append(e.names, name)
	}
	e.fields[name] = err
	return e
}

// Empty reports whether the tree holds no message at any depth.
func (e *ValidationError) Empty() bool {
	if e == nil {
		return true
	}
	return len(e.messages) == 0 && len(e.items) == 0 && len(e.fields) == 0
}

// Err returns e as an error, or nil when the tree is empty.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Messages returns the messages attached directly to this node.
func (e *ValidationError) Messages() []Message {
	if e == nil {
		return nil
	}
	return append([]Message(nil), e.messages...)
}

// ItemIndexes returns the indexes of rows carrying errors, ascending.
func (e *ValidationError) ItemIndexes() []int {
	if e == nil || len(e.items) == 0 {
		return nil
	}
	out := make([]int, 0, len(e.items))
	for idx := range e.items {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Item returns the error of row index, if any.
func (e *ValidationError) Item(index int) *ValidationError {
	if e == nil {
		return nil
	}
	return e.items[index]
}

// FieldNames returns the names of sub-fields carrying errors, in the order
// they were attached.
func (e *ValidationError) FieldNames() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.names...)
}

// Field returns the error of sub-field name, if any.
func (e *ValidationError) Field(name string) *ValidationError {
	if e == nil {
		return nil
	}
	return e.fields[name]
}

// Texts returns every message text in the tree: own messages first, then
// rows in index order, then sub-fields in attachment order.
func (e *ValidationError) Texts() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, msg := range e.messages {
		out = append(out, msg.Text)
	}
	for _, idx := range e.ItemIndexes() {
		out = append(out, e.items[idx].Texts()...)
	}
	for _, name := range e.names {
		out = append(out, e.fields[name].Texts()...)
	}
	return out
}

// HasCode reports whether any message in the tree carries code.
func (e *ValidationError) HasCode(code string) bool {
	if e == nil {
		return false
	}
	for _, msg := range e.messages {
		if msg.Code == code {
			return true
		}
	}
	for _, item := range e.items {
		if item.HasCode(code) {
			return true
		}
	}
	for _, sub := range e.fields {
		if sub.HasCode(code) {
			return true
		}
	}
	return false
}

// Flatten maps the tree onto submitted keys: sub-field errors move to
// Join(name, sub) while row errors stay under the key the rows share.
func (e *ValidationError) Flatten(name string) map[string][]string {
	out := make(map[string][]string)
	e.flattenInto(name, out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func (e *ValidationError) flattenInto(name string, out map[string][]string) {
	if e == nil {
		return
	}
	for _, msg := range e.messages {
		out[name] = append(out[name], msg.Text)
	}
	for _, idx := range e.ItemIndexes() {
		e.items[idx].flattenInto(name, out)
	}
	for _, sub := range e.names {
		e.fields[sub].flattenInto(Join(name, sub), out)
	}
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Texts(), "; ")
}
