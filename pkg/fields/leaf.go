package fields

import (
	"github.com/goliatone/go-formfields/pkg/submission"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// leaf implements the extraction and rendering shared by scalar fields.
type leaf struct {
	cfg config
}

func newLeaf(options []Option, fallback widgets.Widget) leaf {
	cfg := newConfig(options)
	if cfg.widget == nil {
		cfg.widget = fallback
	}
	return leaf{cfg: cfg}
}

// Spec implements Field.
func (l *leaf) Spec() Spec {
	return l.cfg.spec.Clone()
}

// Widget returns the configured widget.
func (l *leaf) Widget() widgets.Widget {
	return l.cfg.widget
}

// ValueFromData returns the last value submitted under name.
func (l *leaf) ValueFromData(data submission.Values, name string) any {
	return data.Get(name)
}

// ValuesFromData returns every value submitted under name, one per row.
func (l *leaf) ValuesFromData(data submission.Values, name string) []any {
	list := data.GetList(name)
	if len(list) == 0 {
		return nil
	}
	out := make([]any, len(list))
	for idx, value := range list {
		out[idx] = value
	}
	return out
}

// Render implements Field.
func (l *leaf) Render(name string, raw any) (string, error) {
	return l.cfg.widget.Render(name, StringValue(raw), nil), nil
}

// Keys implements KeyLister.
func (l *leaf) Keys(name string) []string {
	return []string{name}
}

func (l *leaf) required() *ValidationError {
	return RequiredError(l.cfg.spec.Message(CodeRequired))
}
