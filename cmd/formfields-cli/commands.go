package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/tui"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/schema"
	"github.com/goliatone/go-formfields/pkg/submission"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run declaration checks on every model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var messages []schema.CheckMessage
			for _, name := range store.Names() {
				if opts.model != "" && name != opts.model {
					continue
				}
				model, _ := store.Model(name)
				messages = append(messages, model.Check()...)
			}
			for _, msg := range messages {
				fmt.Fprintf(out, "%s: %s\n", msg.Level, msg.Error())
			}
			fmt.Fprintf(out, "System check identified %d issue(s).\n", len(messages))
			if len(schema.Serious(messages)) > 0 {
				return errInvalid
			}
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		data         string
		action       string
		method       string
		prefix       string
		inlineAssets bool
		rendererName string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the model form as HTML, or collect it with the tui renderer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := opts.loadForm(forms.WithPrefix(prefix))
			if err != nil {
				return err
			}
			bound := form.Unbound()
			if data != "" {
				values, err := readData(data, cmd.InOrStdin())
				if err != nil {
					return err
				}
				bound = form.Bind(values)
			}
			html, err := vanilla.New(
				vanilla.WithInlineAssets(inlineAssets, inlineAssets),
				vanilla.WithLogger(opts.logger),
			)
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(html, tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithLogger(opts.logger),
			))
			if err != nil {
				return err
			}
			renderer, err := registry.Lookup(rendererName)
			if err != nil {
				return err
			}
			opts.logger.Debug("rendering form", "renderer", renderer.Name(), "content_type", renderer.ContentType())
			out, err := renderer.Render(cmd.Context(), bound, render.RenderOptions{Action: action, Method: method})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer to use (vanilla or tui)")
	cmd.Flags().StringVar(&data, "data", "", `urlencoded data to bind ("-" reads stdin)`)
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	cmd.Flags().StringVar(&method, "method", "post", "form method")
	cmd.Flags().StringVar(&prefix, "prefix", "", "form prefix")
	cmd.Flags().BoolVar(&inlineAssets, "inline-assets", false, "inline the stylesheet and row script")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		data   string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate urlencoded data and print the cleaned values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := opts.loadForm()
			if err != nil {
				return err
			}
			values, err := readData(data, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if strict {
				if err := openapi.ValidateSubmission(openapi.Schema(form), values); err != nil {
					mapping := render.MapErrorPayload(form.Keys(), openapi.ErrorPayload(err))
					return reportErrors(cmd.OutOrStdout(), mapping.Apply(nil))
				}
			}
			return reportBound(cmd.OutOrStdout(), form.Bind(values))
		},
	}
	cmd.Flags().StringVar(&data, "data", "-", `urlencoded data ("-" reads stdin)`)
	cmd.Flags().BoolVar(&strict, "strict", false, "check the submission shape against the OpenAPI schema first")
	return cmd
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	var encoded bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Collect the model form interactively, then validate it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := opts.loadForm()
			if err != nil {
				return err
			}
			collector := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithLogger(opts.logger),
			)
			values, err := collector.Collect(cmd.Context(), form, submission.New())
			if err != nil {
				return err
			}
			if encoded {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), values.Encode())
				return err
			}
			return reportBound(cmd.OutOrStdout(), form.Bind(values))
		},
	}
	cmd.Flags().BoolVar(&encoded, "encoded", false, "print the urlencoded submission instead of cleaned values")
	return cmd
}

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI request body of the model form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := opts.loadForm()
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(openapi.RequestBody(form), "", "  ")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				_, err = fmt.Fprintln(out, string(payload))
				return err
			case "yaml":
				converted, err := jsonToYAML(payload)
				if err != nil {
					return err
				}
				_, err = out.Write(converted)
				return err
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func reportBound(out io.Writer, bound *forms.Bound) error {
	if !bound.IsValid() {
		return reportErrors(out, bound.Errors())
	}
	payload, err := json.MarshalIndent(bound.CleanedData(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}

func reportErrors(out io.Writer, errs map[string][]string) error {
	payload, err := json.MarshalIndent(map[string]any{"errors": errs}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(payload))
	return errInvalid
}

// jsonToYAML re-encodes JSON as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(node *yaml.Node) {
	if node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode {
		node.Style = 0
	}
	if node.Kind == yaml.ScalarNode && node.Style == yaml.DoubleQuotedStyle {
		node.Style = 0
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}
