package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vinicius-lino-figueiredo/mongorql"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Jobs int
}

// batchLine is a query read from the input, numbered from 1.
type batchLine struct {
	Number int
	Query  string
}

// batchResult is what batch prints for a query that failed.
type batchResult struct {
	Line  int    `json:"line" yaml:"line"`
	Query string `json:"query" yaml:"query"`
	Error string `json:"error" yaml:"error"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Translate one RQL query per line",
		Long: `Translate a file with one RQL query per line and print the results in
input order, as JSON lines or as a YAML stream.

Blank lines and lines starting with # are skipped. Queries that cannot be
translated are printed as error records and make the command fail once every
line was handled.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of queries translated concurrently")

	return cmd
}

func runBatch(opts *BatchOptions, args []string, cmd *cobra.Command) error {
	if opts.config != nil {
		opts.Jobs = opts.config.GetInt("jobs")
	}
	if opts.Jobs < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid jobs %d: must be at least 1", opts.Jobs))
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "opening input", err)
		}
		defer f.Close()
		in = f
	}

	lines, err := readLines(in)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading input", err)
	}

	docs := make([]any, len(lines))
	failed := make([]bool, len(lines))

	params := mongorql.WithParameters(opts.Parameters)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.Jobs)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			q, err := opts.translator.Translate(line.Query, params)
			if err != nil {
				docs[i] = batchResult{Line: line.Number, Query: line.Query, Error: err.Error()}
				failed[i] = true
				return nil
			}
			docs[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "batch interrupted", err)
	}

	formatter := &OutputFormatter{
		Format: opts.Format,
		Indent: opts.Indent,
		Writer: cmd.OutOrStdout(),
	}
	if err := formatter.WriteAll(docs); err != nil {
		return err
	}

	var count int
	for _, f := range failed {
		if f {
			count++
		}
	}
	if count > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d queries failed", count, len(lines)))
	}
	return nil
}

func readLines(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{Number: n, Query: text})
	}
	return lines, scanner.Err()
}
