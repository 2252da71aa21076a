// Package backend is a registry of rs.Runtime implementations.
//
// Runtime packages register a factory on import:
//
//	import _ "github.com/gogpu/rs/backend/software"
//	import _ "github.com/gogpu/rs/backend/gpu"
//
// Callers then pick one by name or take the best available:
//
//	rt, err := backend.Default()      // gpu, falling back to software
//	rt, err := backend.New("software")
package backend
