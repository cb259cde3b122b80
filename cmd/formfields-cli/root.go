package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/logger"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/submission"
)

// errInvalid is returned after the command already reported the problem.
var errInvalid = errors.New("invalid")

type rootOptions struct {
	models   string
	model    string
	logLevel string
	logJSON  bool

	logger logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "formfields-cli",
		Short:         "Check, render and validate forms declared in a model file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = logger.NewLogger(&logger.Config{
				Level:      logger.ParseLevel(opts.logLevel),
				Output:     cmd.ErrOrStderr(),
				JSON:       opts.logJSON,
				TimeFormat: "15:04:05",
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.models, "models", "f", "models.yaml", "model declaration file (JSON or YAML)")
	flags.StringVarP(&opts.model, "model", "m", "", "model name (defaults to the only model in the file)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")

	root.AddCommand(
		newCheckCmd(opts),
		newRenderCmd(opts),
		newValidateCmd(opts),
		newPromptCmd(opts),
		newSchemaCmd(opts),
	)
	return root
}

func (o *rootOptions) store() (*schema.Store, error) {
	store, err := schema.LoadFile(o.models)
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, fmt.Errorf("no models declared in %s", o.models)
	}
	return store, nil
}

func (o *rootOptions) loadModel() (*schema.Model, error) {
	store, err := o.store()
	if err != nil {
		return nil, err
	}
	name := o.model
	if name == "" {
		names := store.Names()
		if len(names) > 1 {
			return nil, fmt.Errorf("%s declares %d models, pick one with --model (%s)", o.models, len(names), strings.Join(names, ", "))
		}
		name = names[0]
	}
	model, ok := store.Model(name)
	if !ok {
		return nil, fmt.Errorf("model %q not found in %s", name, o.models)
	}
	return model, nil
}

func (o *rootOptions) loadForm(options ...forms.Option) (*forms.Form, error) {
	model, err := o.loadModel()
	if err != nil {
		return nil, err
	}
	options = append(options, forms.WithLogger(o.logger))
	return model.Form(options...)
}

// readData parses urlencoded data from the flag value, or from in when the
// value is "-".
func readData(raw string, in io.Reader) (submission.Values, error) {
	if raw == "-" {
		if in == nil {
			in = os.Stdin
		}
		body, err := io.ReadAll(in)
		if err != nil {
			return submission.Values{}, fmt.Errorf("read data: %w", err)
		}
		raw = strings.TrimSpace(string(body))
	}
	values, err := submission.Parse(raw)
	if err != nil {
		return submission.Values{}, fmt.Errorf("parse data: %w", err)
	}
	return values, nil
}
