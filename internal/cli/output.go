package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A query could not be translated
	ExitCommandError = 2 // Invalid flags, arguments or configuration
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError come from cobra itself, like unknown flags, and are usage errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

var errorLabel = color.New(color.FgRed, color.Bold)

// PrintError writes err to w with a colored prefix.
func PrintError(w io.Writer, err error) {
	errorLabel.Fprint(w, "error:")
	fmt.Fprintf(w, " %v\n", err)
}

// OutputFormatter writes translated queries in the configured format.
type OutputFormatter struct {
	Format string
	Indent int
	Writer io.Writer
}

// Write writes a single document. JSON is indented with Indent spaces, or
// compact when Indent is zero.
func (f *OutputFormatter) Write(doc any) error {
	if f.Format == "yaml" {
		return f.writeYAML(doc)
	}
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	b := bytes.TrimSuffix(raw.Bytes(), []byte("\n"))
	if f.Indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", strings.Repeat(" ", f.Indent)); err != nil {
			return err
		}
		b = buf.Bytes()
	}
	b = append(b, '\n')
	_, err := f.Writer.Write(b)
	return err
}

// WriteAll writes docs as JSON lines, or as a YAML stream separated by
// "---".
func (f *OutputFormatter) WriteAll(docs []any) error {
	if f.Format == "yaml" {
		return f.writeYAML(docs...)
	}
	compact := &OutputFormatter{Format: f.Format, Writer: f.Writer}
	for _, doc := range docs {
		if err := compact.Write(doc); err != nil {
			return err
		}
	}
	return nil
}

func (f *OutputFormatter) writeYAML(docs ...any) error {
	enc := yaml.NewEncoder(f.Writer)
	indent := f.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return enc.Close()
}
