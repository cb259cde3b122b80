package widgets

import (
	"html"
	"sort"
	"strconv"
	"strings"
)

// Attrs holds extra HTML attributes. Attributes with an empty value render
// as boolean attributes (for example "disabled").
type Attrs map[string]string

// Widget renders the HTML control for one value.
type Widget interface {
	Render(name, value string, attrs Attrs) string
}

// Choice is a value/label pair offered by a Select.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// TextInput renders an <input>. InputType defaults to "text".
type TextInput struct {
	InputType string
	Attrs     Attrs
}

// Render implements Widget.
func (w TextInput) Render(name, value string, attrs Attrs) string {
	inputType := strings.TrimSpace(w.InputType)
	if inputType == "" {
		inputType = "text"
	}
	merged := mergeAttrs(w.Attrs, attrs)
	merged["type"] = inputType
	merged["name"] = name
	if value != "" && inputType != "password" {
		merged["value"] = value
	}
	return "<input" + renderAttrs(merged) + ">"
}

// Textarea renders a <textarea>; Cols and Rows default to 40 and 10.
type Textarea struct {
	Cols  int
	Rows  int
	Attrs Attrs
}

// Render implements Widget.
func (w Textarea) Render(name, value string, attrs Attrs) string {
	cols, rows := w.Cols, w.Rows
	if cols <= 0 {
		cols = 40
	}
	if rows <= 0 {
		rows = 10
	}
	merged := mergeAttrs(w.Attrs, attrs)
	merged["cols"] = strconv.Itoa(cols)
	merged["rows"] = strconv.Itoa(rows)
	merged["name"] = name

	var builder strings.Builder
	builder.WriteString("<textarea")
	builder.WriteString(renderAttrs(merged))
	builder.WriteString(">\n")
	builder.WriteString(html.EscapeString(value))
	builder.WriteString("</textarea>")
	return builder.String()
}

// Select renders a <select> with the configured choices in order.
type Select struct {
	Choices []Choice
	Attrs   Attrs
}

// Render implements Widget.
func (w Select) Render(name, value string, attrs Attrs) string {
	merged := mergeAttrs(w.Attrs, attrs)
	merged["name"] = name

	var builder strings.Builder
	builder.WriteString("<select")
	builder.WriteString(renderAttrs(merged))
	builder.WriteString(">\n")
	for _, choice := range w.Choices {
		builder.WriteString(`  <option value="`)
		builder.WriteString(html.EscapeString(choice.Value))
		builder.WriteString(`"`)
		if choice.Value == value {
			builder.WriteString(" selected")
		}
		builder.WriteString(">")
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		builder.WriteString(html.EscapeString(label))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("</select>")
	return builder.String()
}

// CheckboxInput renders a checkbox that is checked for truthy values.
type CheckboxInput struct {
	Attrs Attrs
}

// Render implements Widget.
func (w CheckboxInput) Render(name, value string, attrs Attrs) string {
	merged := mergeAttrs(w.Attrs, attrs)
	merged["type"] = "checkbox"
	merged["name"] = name
	if Truthy(value) {
		merged["checked"] = ""
	}
	return "<input" + renderAttrs(merged) + ">"
}

// HiddenInput renders <input type="hidden">.
type HiddenInput struct {
	Attrs Attrs
}

// Render implements Widget.
func (w HiddenInput) Render(name, value string, attrs Attrs) string {
	return TextInput{InputType: "hidden", Attrs: w.Attrs}.Render(name, value, attrs)
}

// Truthy reports whether a submitted checkbox value means "checked".
func Truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

func mergeAttrs(base, extra Attrs) Attrs {
	out := make(Attrs, len(base)+len(extra)+4)
	for key, value := range base {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}

func renderAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(key))
		if value := attrs[key]; value != "" {
			builder.WriteString(`="`)
			builder.WriteString(html.EscapeString(value))
			builder.WriteString(`"`)
		}
	}
	return builder.String()
}
