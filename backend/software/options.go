package software

// Option configures a Runtime.
type Option func(*options)

type options struct {
	accel           Accelerator
	kernelCacheSize int
	workers         int
}

// defaultKernelCacheSize bounds the number of cached gaussian kernels.
const defaultKernelCacheSize = 64

func defaultOptions() options {
	return options{kernelCacheSize: defaultKernelCacheSize}
}

// WithAccelerator offloads eligible launches to a. The runtime calls
// a.Init; if it fails, the runtime logs a warning and stays on the CPU.
func WithAccelerator(a Accelerator) Option {
	return func(o *options) {
		o.accel = a
	}
}

// WithWorkers sets how many goroutines run kernel row bands. Zero means
// GOMAXPROCS; one runs every kernel on the launching goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.workers = n
		}
	}
}

// WithKernelCacheSize sets how many blur kernels are cached.
// Zero means unlimited.
func WithKernelCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.kernelCacheSize = n
		}
	}
}
