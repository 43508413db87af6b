// Object pools for reducing GC pressure in hot paths
//
// Provides reusable slice pools for the buffers a workspace scan allocates
// per height:
// - Pose buffers handed to the batch runner
// - Result flags
//
// Usage:
//
//	var poses pool.Slices[kinematics.Pose[float64]]
//	buf := poses.Get(n)
//	defer poses.Put(buf)
//	// use buf...
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package pool

import (
	"sync"
)

// MaxPooledLen caps the capacity of slices kept for reuse. Larger slices are
// left to the garbage collector.
const MaxPooledLen = 1 << 22

// Slices is a pool of []T. The zero value is ready to use and a Slices must
// not be copied after first use.
type Slices[T any] struct {
	pool sync.Pool
}

// Get returns a zeroed slice of length n. Pooled capacity is reused when it
// is large enough; otherwise a new slice is allocated.
func (p *Slices[T]) Get(n int) []T {
	if v, ok := p.pool.Get().(*[]T); ok {
		if cap(*v) >= n {
			s := (*v)[:n]
			clear(s)
			return s
		}
		// too small, keep it for a smaller request
		p.pool.Put(v)
	}
	return make([]T, n)
}

// Put returns a slice to the pool. Nil, empty and oversized slices are
// dropped.
func (p *Slices[T]) Put(s []T) {
	if cap(s) == 0 || cap(s) > MaxPooledLen {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}
