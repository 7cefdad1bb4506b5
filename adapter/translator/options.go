package translator

import (
	"log/slog"

	"github.com/vinicius-lino-figueiredo/mongorql/domain"
)

// WithParser sets the parser used for RQL text.
func WithParser(p domain.Parser) Option {
	return func(t *Translator) {
		t.parser = p
	}
}

// WithCompiler sets the compiler used to turn trees into queries.
func WithCompiler(c domain.Compiler) Option {
	return func(t *Translator) {
		t.compiler = c
	}
}

// WithLogger sets the logger. Translations are logged at debug level. A nil
// logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// Option configures translator behavior through the functional options
// pattern.
type Option func(*Translator)
