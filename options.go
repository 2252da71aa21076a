package rs

import "log/slog"

// Option configures a Context during creation.
//
// Example:
//
//	ctx, err := rs.NewContext(software.New(),
//	    rs.WithDPI(160),
//	    rs.WithLeakHandler(func(r rs.LeakReport) { log.Printf("leak: %v", r) }),
//	)
type Option func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	flags       ContextFlags
	dpi         int
	logger      *slog.Logger
	leakHandler func(LeakReport)
}

// defaultDPI matches a medium density display.
const defaultDPI = 160

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		flags: ContextFlagNone,
		dpi:   defaultDPI,
	}
}

// WithFlags sets the native context flags.
func WithFlags(flags ContextFlags) Option {
	return func(o *contextOptions) {
		o.flags = flags
	}
}

// WithDPI sets the display density used when creating fonts.
// Non-positive values are ignored.
func WithDPI(dpi int) Option {
	return func(o *contextOptions) {
		if dpi > 0 {
			o.dpi = dpi
		}
	}
}

// WithLogger sets a logger for this context only. Without it the context
// logs through the package-wide Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithLeakHandler installs a callback invoked when the safety net releases
// an object whose Destroy was never called. Intended for tests and debug
// builds; the callback runs on the runtime's cleanup goroutine.
func WithLeakHandler(fn func(LeakReport)) Option {
	return func(o *contextOptions) {
		o.leakHandler = fn
	}
}
