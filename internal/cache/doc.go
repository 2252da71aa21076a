// Package cache provides a generic LRU cache shared by the runtimes.
//
// The software runtime caches gaussian kernels by radius; the GPU
// accelerator caches compute pipelines by kernel kind and releases them
// through the eviction callback.
//
//	c := cache.New[int, []float32](32)
//	k, err := c.GetOrCreate(radius, func() ([]float32, error) {
//	    return buildKernel(radius), nil
//	})
//
// Cache is safe for concurrent use.
package cache
