// Package config loads robot dimensions and named poses from Klipper-style
// .cfg files or TOML documents, with option access tracking.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

// Config provides access to a configuration file with access tracking.
type Config struct {
	mu       sync.RWMutex
	sections map[string]*Section
	order    []string // Maintains section order

	// Access tracking for sections
	accessedSections map[string]struct{}
}

// New creates a new empty Config.
func New() *Config {
	return &Config{
		sections:         make(map[string]*Section),
		accessedSections: make(map[string]struct{}),
	}
}

// LoadFile dispatches on the file extension: .toml goes through the TOML
// decoder, everything else through the .cfg parser.
func LoadFile(path string) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(path)
	}
	return Load(path)
}

// Load reads a configuration file and returns a Config.
// Supports [include path] directives for including other config files.
func Load(path string) (*Config, error) {
	c := New()
	visited := make(map[string]bool)
	if err := c.parseFile(path, visited); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadString parses a configuration from a string. Include directives are
// rejected since there is no directory to resolve them against.
func LoadString(data string) (*Config, error) {
	c := New()
	p := parser{cfg: c, name: "<string>"}
	if err := p.parse(strings.NewReader(data)); err != nil {
		return nil, err
	}
	return c, nil
}

// parseFile parses a config file and handles include directives.
func (c *Config) parseFile(path string, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: invalid path %s: %w", path, err)
	}

	// Check for recursive includes
	if visited[abs] {
		return fmt.Errorf("config: recursive include: %s", path)
	}
	visited[abs] = true
	defer func() { visited[abs] = false }()

	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("config: unable to open %s: %w", path, err)
	}
	defer f.Close()

	p := parser{
		cfg:  c,
		name: path,
		include: func(pattern string) error {
			glob := filepath.Join(filepath.Dir(abs), pattern)
			matches, err := filepath.Glob(glob)
			if err != nil {
				return fmt.Errorf("config: invalid include pattern %q: %w", pattern, err)
			}
			sort.Strings(matches)
			if len(matches) == 0 && !hasGlobMeta(glob) {
				return fmt.Errorf("config: include file does not exist: %s", glob)
			}
			for _, m := range matches {
				if err := c.parseFile(m, visited); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return p.parse(f)
}

// parser holds the state of a single .cfg document.
type parser struct {
	cfg     *Config
	name    string
	include func(pattern string) error

	section string
	options map[string]string
}

func (p *parser) flush() {
	if p.section != "" {
		p.cfg.addSection(p.section, p.options)
	}
	p.section = ""
	p.options = nil
}

func (p *parser) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.IndexAny(line, "#;"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		// Section header
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			p.flush()

			header := strings.TrimSpace(line[1 : len(line)-1])
			if header == "" {
				return fmt.Errorf("config: empty section header at line %d in %s", lineNum, p.name)
			}

			if strings.HasPrefix(header, "include ") {
				pattern := strings.TrimSpace(header[len("include "):])
				if pattern == "" {
					return fmt.Errorf("config: empty include at line %d in %s", lineNum, p.name)
				}
				if p.include == nil {
					return fmt.Errorf("config: include not supported in %s", p.name)
				}
				if err := p.include(pattern); err != nil {
					return err
				}
				continue
			}

			p.section = strings.Join(strings.Fields(header), " ")
			p.options = make(map[string]string)
			continue
		}

		// Skip options before first section
		if p.section == "" {
			continue
		}

		// Parse key: value or key = value
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			kv = strings.SplitN(line, "=", 2)
		}
		if len(kv) != 2 {
			return fmt.Errorf("config: malformed line %d in %s: %q", lineNum, p.name, line)
		}

		key := strings.TrimSpace(kv[0])
		if key == "" {
			continue
		}
		p.options[key] = strings.TrimSpace(kv[1])
	}
	p.flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: error reading %s: %w", p.name, err)
	}
	return nil
}

// hasGlobMeta returns true if the path contains glob metacharacters.
func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// addSection adds a section to the config.
func (c *Config) addSection(name string, options map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If section already exists, merge options
	if existing, ok := c.sections[name]; ok {
		for k, v := range options {
			existing.options[strings.ToLower(k)] = v
		}
		return
	}

	c.sections[name] = newSection(name, options)
	c.order = append(c.order, name)
}

// GetSection returns a Section by name, or error if not found.
func (c *Config) GetSection(name string) (*Section, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sec, ok := c.sections[name]
	if !ok {
		return nil, derrors.ConfigSectionError(name)
	}
	c.accessedSections[name] = struct{}{}
	return sec, nil
}

// GetSectionOptional returns a Section if it exists, or nil if not.
func (c *Config) GetSectionOptional(name string) *Section {
	c.mu.Lock()
	defer c.mu.Unlock()

	sec, ok := c.sections[name]
	if ok {
		c.accessedSections[name] = struct{}{}
	}
	return sec
}

// HasSection checks if a section exists.
func (c *Config) HasSection(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.sections[name]
	return ok
}

// GetSectionNames returns all section names in order.
func (c *Config) GetSectionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.order))
	copy(result, c.order)
	return result
}

// GetPrefixSections returns all sections that start with the given prefix,
// in file order, and marks them accessed.
func (c *Config) GetPrefixSections(prefix string) []*Section {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []*Section
	for _, name := range c.order {
		if strings.HasPrefix(name, prefix) {
			result = append(result, c.sections[name])
			c.accessedSections[name] = struct{}{}
		}
	}
	return result
}

// GetUnusedSections returns a list of sections that were not accessed.
func (c *Config) GetUnusedSections() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []string
	for name := range c.sections {
		if _, ok := c.accessedSections[name]; !ok {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// CheckUnusedOptions returns an error if any accessed section has options
// nobody read. Typos in option names surface here.
func (c *Config) CheckUnusedOptions() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var problems []string
	for name := range c.accessedSections {
		unused := c.sections[name].GetUnusedOptions()
		if len(unused) > 0 {
			problems = append(problems, fmt.Sprintf("[%s]: unused options %v", name, unused))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return derrors.New(derrors.ErrConfigValidation, strings.Join(problems, "; "))
	}
	return nil
}
