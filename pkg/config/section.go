// Config section access with option tracking and typed getters.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

// Section provides access to a config section with access tracking.
type Section struct {
	name    string
	options map[string]string

	// Access tracking
	mu       sync.RWMutex
	accessed map[string]struct{}
}

// newSection creates a new Section.
func newSection(name string, options map[string]string) *Section {
	opts := make(map[string]string, len(options))
	for k, v := range options {
		opts[strings.ToLower(k)] = v
	}
	return &Section{
		name:     name,
		options:  opts,
		accessed: make(map[string]struct{}),
	}
}

// GetName returns the section name.
func (s *Section) GetName() string {
	return s.name
}

// markAccessed records that an option was accessed.
func (s *Section) markAccessed(option string) {
	s.mu.Lock()
	s.accessed[strings.ToLower(option)] = struct{}{}
	s.mu.Unlock()
}

// GetUnusedOptions returns the sorted options that were not accessed.
func (s *Section) GetUnusedOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []string
	for opt := range s.options {
		if _, ok := s.accessed[opt]; !ok {
			result = append(result, opt)
		}
	}
	sort.Strings(result)
	return result
}

// HasOption checks if an option exists in this section.
func (s *Section) HasOption(option string) bool {
	_, ok := s.options[strings.ToLower(option)]
	return ok
}

// Get returns a string option value.
// If default is provided and option doesn't exist, returns default.
// If no default and option doesn't exist, returns error.
func (s *Section) Get(option string, fallback ...string) (string, error) {
	key := strings.ToLower(option)
	if v, ok := s.options[key]; ok {
		s.markAccessed(option)
		return v, nil
	}
	if len(fallback) > 0 {
		s.markAccessed(option)
		return fallback[0], nil
	}
	return "", derrors.ConfigOptionError(s.name, option)
}

// GetFloat returns a float64 option value. NaN and infinities are rejected.
func (s *Section) GetFloat(option string, fallback ...float64) (float64, error) {
	key := strings.ToLower(option)
	if v, ok := s.options[key]; ok {
		s.markAccessed(option)
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, derrors.ConfigTypeError(s.name, option, v, "float", err)
		}
		// NaN compares false against every bound
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, derrors.ConfigValidationError(s.name, option,
				fmt.Sprintf("value %q is not a finite number", strings.TrimSpace(v)))
		}
		return f, nil
	}
	if len(fallback) > 0 {
		s.markAccessed(option)
		return fallback[0], nil
	}
	return 0, derrors.ConfigOptionError(s.name, option)
}

// FloatBounds specifies bounds for GetFloatWithBounds.
type FloatBounds struct {
	MinVal *float64 // minimum value (>=)
	MaxVal *float64 // maximum value (<=)
	Above  *float64 // must be above this value (>)
	Below  *float64 // must be below this value (<)
}

// Above returns bounds requiring values strictly greater than v.
func Above(v float64) FloatBounds {
	return FloatBounds{Above: &v}
}

// Between returns bounds requiring lo <= value <= hi.
func Between(lo, hi float64) FloatBounds {
	return FloatBounds{MinVal: &lo, MaxVal: &hi}
}

// GetFloatWithBounds returns a float64 option value with bounds checking.
func (s *Section) GetFloatWithBounds(option string, bounds FloatBounds, fallback ...float64) (float64, error) {
	v, err := s.GetFloat(option, fallback...)
	if err != nil {
		return 0, err
	}
	outOfRange := func(constraint string, limit float64) error {
		return derrors.ConfigValidationError(s.name, option,
			fmt.Sprintf("value %v %s %s", v, constraint, strconv.FormatFloat(limit, 'f', -1, 64)))
	}
	if bounds.MinVal != nil && v < *bounds.MinVal {
		return 0, outOfRange("must have minimum of", *bounds.MinVal)
	}
	if bounds.MaxVal != nil && v > *bounds.MaxVal {
		return 0, outOfRange("must have maximum of", *bounds.MaxVal)
	}
	if bounds.Above != nil && v <= *bounds.Above {
		return 0, outOfRange("must be above", *bounds.Above)
	}
	if bounds.Below != nil && v >= *bounds.Below {
		return 0, outOfRange("must be below", *bounds.Below)
	}
	return v, nil
}
