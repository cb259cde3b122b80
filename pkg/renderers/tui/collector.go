package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/internal/labels"
	"github.com/goliatone/go-formfields/pkg/dynamicinputs"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/logger"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/submission"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

const noneOption = "(none)"

// Collector prompts for every key a form reads and returns the answers as a
// flat submission. Dynamic input rows are collected in a loop that asks
// "Add another row?" until the user declines or max_count is reached.
type Collector struct {
	driver PromptDriver
	logger logger.Logger
	theme  Theme
}

var _ render.Renderer = (*Collector)(nil)

// New constructs a collector backed by the survey driver unless overridden.
func New(options ...Option) *Collector {
	c := &Collector{logger: logger.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Name implements render.Renderer.
func (c *Collector) Name() string { return "tui" }

// ContentType implements render.Renderer.
func (c *Collector) ContentType() string { return "application/x-www-form-urlencoded" }

// Render implements render.Renderer. It collects values, seeded from the
// bound data, and returns them urlencoded.
func (c *Collector) Render(ctx context.Context, bound *forms.Bound, opts render.RenderOptions) ([]byte, error) {
	if bound == nil {
		return nil, ErrNilForm
	}
	var prefill submission.Values
	if bound.IsBound() {
		prefill = bound.Data()
	}
	values, err := c.collect(ctx, bound.Form(), prefill, opts.Errors)
	if err != nil {
		return nil, err
	}
	return []byte(values.Encode()), nil
}

// Collect prompts for every field of form. prefill supplies defaults keyed
// the same way as the resulting submission.
func (c *Collector) Collect(ctx context.Context, form *forms.Form, prefill submission.Values) (submission.Values, error) {
	return c.collect(ctx, form, prefill, nil)
}

func (c *Collector) collect(ctx context.Context, form *forms.Form, prefill submission.Values, errs map[string][]string) (submission.Values, error) {
	if ctx == nil {
		return submission.Values{}, errors.New("tui: context is required")
	}
	if form == nil {
		return submission.Values{}, ErrNilForm
	}
	if err := ctx.Err(); err != nil {
		return submission.Values{}, err
	}

	s := &session{collector: c, errors: errs}
	for _, msg := range errs[forms.NonFieldErrors] {
		s.info(ctx, c.theme.ErrorPrefix+msg)
	}

	out := submission.New()
	for _, entry := range form.Entries() {
		key := form.HTMLName(entry.Name)
		label := entry.Field.Spec().Label
		if label == "" {
			label = labels.Default(entry.Name)
		}
		if err := s.field(ctx, entry.Field, key, label, prefill, &out); err != nil {
			return submission.Values{}, err
		}
	}

	c.logger.Debug("tui collected", "form", form.Name(), "keys", out.Len())
	return out, nil
}

type session struct {
	collector *Collector
	errors    map[string][]string
}

func (s *session) info(ctx context.Context, msg string) {
	if err := s.collector.driver.Info(ctx, msg); err != nil {
		s.collector.logger.Warn("tui info message not written", "message", msg, "error", err)
	}
}

func (s *session) field(ctx context.Context, field fields.Field, key, label string, prefill submission.Values, out *submission.Values) error {
	switch typed := field.(type) {
	case *dynamicinputs.Field:
		return s.rows(ctx, typed, key, label, prefill, out)
	case fields.Container:
		for _, child := range typed.Children() {
			childKey := fields.Join(key, child.Name)
			childLabel := child.Field.Spec().Label
			if childLabel == "" {
				childLabel = labels.Default(child.Name)
			}
			if err := s.field(ctx, child.Field, childKey, label+" / "+childLabel, prefill, out); err != nil {
				return err
			}
		}
		return nil
	default:
		value, err := s.leaf(ctx, field, key, label, prefill.Get(key))
		if err != nil {
			return err
		}
		out.Add(key, value)
		return nil
	}
}

// rows collects one row at a time. Each row is prompted against a
// submission holding only that row's prefilled values, so every key gains
// exactly one value per row.
func (s *session) rows(ctx context.Context, field *dynamicinputs.Field, key, label string, prefill submission.Values, out *submission.Values) error {
	keys := fields.KeysOf(field, key)
	existing := 0
	for _, k := range keys {
		existing = max(existing, len(prefill.GetList(k)))
	}

	if existing == 0 && !field.Spec().Required {
		add, err := s.collector.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Button() + "?",
			Help:    field.Spec().HelpText,
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
	}

	for row := 0; ; row++ {
		rowPrefill := submission.New()
		for _, k := range keys {
			if list := prefill.GetList(k); row < len(list) {
				rowPrefill.Add(k, list[row])
			}
		}
		rowLabel := fmt.Sprintf("%s #%d", label, row+1)
		if err := s.field(ctx, field.Inner(), key, rowLabel, rowPrefill, out); err != nil {
			return err
		}

		if row+1 >= field.MaxCount() {
			s.info(ctx, fmt.Sprintf("%s%s: maximum of %d rows reached", s.collector.theme.InfoPrefix, label, field.MaxCount()))
			return nil
		}
		more, err := s.collector.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another row?",
			Default: row+1 < existing,
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// leaf prompts until the answer is blank or cleans without error. Blank
// answers are left to form validation.
func (s *session) leaf(ctx context.Context, field fields.Field, key, label, def string) (string, error) {
	for _, msg := range s.errors[key] {
		s.info(ctx, fmt.Sprintf("%s%s: %s", s.collector.theme.ErrorPrefix, label, msg))
	}
	help := field.Spec().HelpText
	for {
		value, err := s.ask(ctx, field, label, help, def)
		if err != nil {
			return "", err
		}
		if fields.IsBlank(value) {
			return value, nil
		}
		if _, err := field.Clean(value); err != nil {
			msgs := fields.AsValidationError(err).Texts()
			s.info(ctx, fmt.Sprintf("%sInvalid %s: %s", s.collector.theme.ErrorPrefix, label, strings.Join(msgs, " ")))
			def = value
			continue
		}
		return value, nil
	}
}

func (s *session) ask(ctx context.Context, field fields.Field, label, help, def string) (string, error) {
	driver := s.collector.driver
	switch typed := field.(type) {
	case *fields.BooleanField:
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: label, Default: widgets.Truthy(def), Help: help})
		if err != nil || !checked {
			return "", err
		}
		return "on", nil
	case *fields.ChoiceField:
		return s.choose(ctx, typed, label, help, def)
	}

	var widget widgets.Widget
	if w, ok := field.(interface{ Widget() widgets.Widget }); ok {
		widget = w.Widget()
	}
	switch w := widget.(type) {
	case widgets.Textarea:
		return driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: help})
	case widgets.TextInput:
		if w.InputType == "password" {
			return driver.Password(ctx, InputConfig{Message: label, Help: help})
		}
	}
	return driver.Input(ctx, InputConfig{Message: label, Default: def, Help: help})
}

func (s *session) choose(ctx context.Context, field *fields.ChoiceField, label, help, def string) (string, error) {
	choices := field.Choices()
	values := make([]string, 0, len(choices)+1)
	options := make([]string, 0, len(choices)+1)
	if !field.Spec().Required {
		values = append(values, "")
		options = append(options, noneOption)
	}
	for _, choice := range choices {
		values = append(values, choice.Value)
		text := choice.Label
		if text == "" {
			text = choice.Value
		}
		options = append(options, text)
	}

	idx, err := s.collector.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: indexOf(values, def),
		Help:         help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: %s: selection %d out of range", label, idx)
	}
	return values[idx], nil
}
