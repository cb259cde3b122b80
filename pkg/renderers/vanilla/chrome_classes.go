package vanilla

import "strings"

// ChromeClass is a typed identifier for the CSS classes on form chrome.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formfields-form"
	ClassField   ChromeClass = "formfields-field"
	ClassErrors  ChromeClass = "formfields-errors"
	ClassHelp    ChromeClass = "formfields-help"
	ClassActions ChromeClass = "formfields-actions"
)

func defaultClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"field":   string(ClassField),
		"errors":  string(ClassErrors),
		"help":    string(ClassHelp),
		"actions": string(ClassActions),
	}
}

// sanitizeClassList drops empty tokens and the reserved dynamicinputs-
// and dictionaryfield prefixes the client script keys on.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "dynamicinputs") || strings.HasPrefix(token, "dictionaryfield") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
