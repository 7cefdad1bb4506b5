package domain

import "strconv"

// WithParameters sets the values that replace $name placeholders in RQL text.
// The map is forwarded to the parser as is.
func WithParameters(p map[string]any) TranslateOption {
	return func(to *TranslateOptions) {
		to.Parameters = p
	}
}

// TranslateOption configures a translation through the functional options
// pattern.
type TranslateOption func(*TranslateOptions)

// TranslateOptions contains parameters for customizing a translation.
type TranslateOptions struct {
	// Parameters holds the values for $name placeholders.
	Parameters map[string]any
}

// Positional returns a parameter map for the placeholders $1, $2, and so on,
// in the order of args.
func Positional(args ...any) map[string]any {
	p := make(map[string]any, len(args))
	for i, arg := range args {
		p[strconv.Itoa(i+1)] = arg
	}
	return p
}
