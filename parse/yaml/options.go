package yaml

// DefaultMaxDepth bounds how deeply mappings and sequences may nest.
const DefaultMaxDepth = 1000

type options struct {
	maxDepth int
}

// Option configures a single Parse call.
type Option func(*options)

// WithMaxDepth sets the nesting limit. Values below 1 restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
