// Package cli implements the mongorql command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vinicius-lino-figueiredo/mongorql"
	"github.com/vinicius-lino-figueiredo/mongorql/pkg/ast"
)

// RootOptions holds global flags for all commands. Values are resolved from
// flags, MONGORQL_* environment variables and the .mongorql.yaml config
// file, in that order.
type RootOptions struct {
	Config  string
	Format  string // "json" | "yaml"
	Indent  int
	Verbose bool
	Params  []string // name=value pairs

	// Parameters binds placeholders. Entries come from the "parameters"
	// config key, overridden by --param.
	Parameters map[string]any

	config     *viper.Viper
	translator mongorql.Translator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml"}

// NewRootCommand creates the root command for the mongorql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "mongorql",
		Short:         "Translate RQL queries into MongoDB query objects",
		Long:          "mongorql reads Resource Query Language expressions and prints the equivalent MongoDB criteria, sort, projections, skip and limit.\n\nSupported operators: " + operatorNames() + ".",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(v, cmd); err != nil {
				return WrapExitError(ExitCommandError, "loading configuration", err)
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			params, err := parseParams(opts.Params)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid parameter", err)
			}
			opts.Parameters = mergeParams(opts.config.GetStringMap("parameters"), params)
			opts.translator = mongorql.New(mongorql.WithLogger(opts.logger(cmd.ErrOrStderr())))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Config, "config", "", "config file (default is .mongorql.yaml in the current or home directory)")
	flags.StringVar(&opts.Format, "format", "json", "output format (json|yaml)")
	flags.IntVar(&opts.Indent, "indent", 2, "indentation width, 0 prints compact json")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log translations to stderr")
	flags.StringArrayVarP(&opts.Params, "param", "p", nil, "placeholder binding as name=value (repeatable)")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))

	return cmd
}

// configKeys are the settings that can be given as flags, MONGORQL_*
// variables or config entries. A key is bound only when the running command
// has the flag.
var configKeys = []string{"format", "indent", "verbose", "jobs"}

// load reads the config file and environment into opts. Flags set on the
// command line take precedence. The config file is searched in the current
// directory, then in the home directory.
func (o *RootOptions) load(v *viper.Viper, cmd *cobra.Command) error {
	if o.Config != "" {
		v.SetConfigFile(o.Config)
	} else {
		v.SetConfigName(".mongorql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix("MONGORQL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range configKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(name, flag); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) || o.Config != "" {
			return err
		}
	}

	o.Format = v.GetString("format")
	o.Indent = v.GetInt("indent")
	o.Verbose = v.GetBool("verbose")
	o.config = v
	return nil
}

func operatorNames() string {
	ops := ast.Operators()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, ", ")
}

func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
