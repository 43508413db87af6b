// Unit tests for object pools
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package pool

import (
	"sync"
	"testing"
)

type pose struct {
	X, Y, Z float64
}

func TestSlicesGet(t *testing.T) {
	var p Slices[pose]

	s := p.Get(5)
	if len(s) != 5 {
		t.Fatalf("expected length 5, got %d", len(s))
	}
	for i := range s {
		s[i] = pose{1, 2, 3}
	}
	p.Put(s)

	// a pooled slice may come back, but always zeroed
	s2 := p.Get(3)
	if len(s2) != 3 {
		t.Fatalf("expected length 3, got %d", len(s2))
	}
	for i, v := range s2 {
		if v != (pose{}) {
			t.Errorf("s2[%d] should be zero, got %+v", i, v)
		}
	}
}

func TestSlicesGrow(t *testing.T) {
	var p Slices[float64]
	p.Put(make([]float64, 2))

	s := p.Get(10)
	if len(s) != 10 {
		t.Fatalf("expected length 10, got %d", len(s))
	}
	for i, v := range s {
		if v != 0 {
			t.Errorf("s[%d] should be 0, got %f", i, v)
		}
	}
}

func TestSlicesPutDropsUnusable(t *testing.T) {
	var p Slices[byte]
	// Should not panic
	p.Put(nil)
	p.Put([]byte{})
	p.Put(make([]byte, 0, MaxPooledLen+1))

	if s := p.Get(0); len(s) != 0 {
		t.Errorf("expected empty slice, got %d", len(s))
	}
}

func TestSlicesConcurrent(t *testing.T) {
	var p Slices[int]
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := p.Get(n%7 + 1)
				for k := range s {
					if s[k] != 0 {
						t.Errorf("dirty slice from pool")
						return
					}
					s[k] = n
				}
				p.Put(s)
			}
		}(i)
	}
	wg.Wait()
}

// BenchmarkSlicesGetPut benchmarks a pooled round trip
func BenchmarkSlicesGetPut(b *testing.B) {
	var p Slices[pose]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := p.Get(1024)
		p.Put(s)
	}
}
