package compiler

import "github.com/vinicius-lino-figueiredo/mongorql/domain"

// WithMerger sets the merger used by the and operator.
func WithMerger(m domain.Merger) Option {
	return func(c *Compiler) {
		c.merger = m
	}
}

// Option configures compiler behavior through the functional options pattern.
type Option func(*Compiler)
