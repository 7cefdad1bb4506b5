package cli

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vinicius-lino-figueiredo/mongorql"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Translate a single RQL query",
		Long: `Translate a single RQL query and print the resulting MongoDB query.

The query is read from standard input when no argument is given. Placeholders
like $1 or $name are bound with --param.`,
		Example: `  mongorql translate 'price=lt=10&sort(-rating)&limit(5)'
  mongorql translate --param 1=10 'eq(qty,$1)'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args, cmd)
		},
	}

	return cmd
}

func runTranslate(opts *TranslateOptions, args []string, cmd *cobra.Command) error {
	options := []mongorql.TranslateOption{mongorql.WithParameters(opts.Parameters)}
	var (
		q   *mongorql.Query
		err error
	)
	if len(args) == 1 {
		q, err = opts.translator.Translate(args[0], options...)
	} else {
		q, err = opts.translator.TranslateReader(cmd.Context(), cmd.InOrStdin(), options...)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	formatter := &OutputFormatter{
		Format: opts.Format,
		Indent: opts.Indent,
		Writer: cmd.OutOrStdout(),
	}
	return formatter.Write(q)
}

// parseParams reads name=value pairs. Values are read as YAML, so 10 is a
// number, true a boolean, [a, b] a list and anything else a string.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		params[name] = v
	}
	return params, nil
}

// mergeParams returns the config parameters overridden by the flag ones, or
// nil when there are none, so placeholders stay as written.
func mergeParams(config, flags map[string]any) map[string]any {
	if len(config) == 0 && len(flags) == 0 {
		return nil
	}
	params := make(map[string]any, len(config)+len(flags))
	maps.Copy(params, config)
	maps.Copy(params, flags)
	return params
}
