package merger

import "github.com/vinicius-lino-figueiredo/mongorql/domain"

// WithComparer sets the comparer used to decide whether two operator values
// differ.
func WithComparer(c domain.Comparer) Option {
	return func(m *Merger) {
		m.comparer = c
	}
}

// Option configures merger behavior through the functional options pattern.
type Option func(*Merger)
