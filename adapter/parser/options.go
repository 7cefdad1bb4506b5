package parser

// WithConverter registers conv under name, so values written as name:text
// are read by it. Registering a default name replaces the builtin converter.
func WithConverter(name string, conv Converter) Option {
	return func(p *Parser) {
		p.converters[name] = conv
	}
}

// Option configures parser behavior through the functional options pattern.
type Option func(*Parser)
