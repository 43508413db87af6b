// TOML front end. Documents are flattened into the same section model the
// .cfg parser produces, so every getter and loader works on both formats.
//
//	[delta_robot]           -> [delta_robot]
//	[pose.home]             -> [pose home]
//	[[pose]] name = "far"   -> [pose far]
//	[[pose]] (no name)      -> [pose <index>]
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadTOML reads a TOML file and returns a Config.
func LoadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to open %s: %w", path, err)
	}
	return loadTOML(string(data), path)
}

// LoadTOMLString parses a TOML document from a string.
func LoadTOMLString(data string) (*Config, error) {
	return loadTOML(data, "<string>")
}

func loadTOML(data, name string) (*Config, error) {
	var doc map[string]interface{}
	md, err := toml.Decode(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("config: error parsing %s: %w", name, err)
	}

	w := tomlWalker{cfg: New(), name: name, rank: make(map[string]int)}
	for i, k := range md.Keys() {
		if _, ok := w.rank[k.String()]; !ok {
			w.rank[k.String()] = i
		}
	}

	for _, key := range w.sorted(nil, doc) {
		switch v := doc[key].(type) {
		case map[string]interface{}:
			if err := w.table([]string{key}, v); err != nil {
				return nil, err
			}
		case []map[string]interface{}:
			if err := w.array([]string{key}, v); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("config: top-level key %q in %s must be a table", key, name)
		}
	}
	return w.cfg, nil
}

type tomlWalker struct {
	cfg  *Config
	name string
	rank map[string]int // document order of dotted keys
}

// sorted returns the keys of m in document order.
func (w *tomlWalker) sorted(path []string, m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	pos := func(k string) int {
		if r, ok := w.rank[strings.Join(append(append([]string{}, path...), k), ".")]; ok {
			return r
		}
		return math.MaxInt
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := pos(keys[i]), pos(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// table adds one section for the scalar options of m, then recurses into
// nested tables.
func (w *tomlWalker) table(path []string, m map[string]interface{}) error {
	return w.tableNamed(path, path, m)
}

func (w *tomlWalker) tableNamed(keyPath, sectionPath []string, m map[string]interface{}) error {
	keys := w.sorted(keyPath, m)

	opts := make(map[string]string)
	for _, k := range keys {
		switch m[k].(type) {
		case map[string]interface{}, []map[string]interface{}:
			continue
		}
		v, err := formatValue(m[k])
		if err != nil {
			return fmt.Errorf("config: %s: [%s] %s: %w", w.name, strings.Join(sectionPath, " "), k, err)
		}
		opts[k] = v
	}
	if len(opts) > 0 || !hasChildTables(m) {
		w.cfg.addSection(strings.Join(sectionPath, " "), opts)
	}

	for _, k := range keys {
		child := append(append([]string{}, keyPath...), k)
		childSection := append(append([]string{}, sectionPath...), k)
		switch v := m[k].(type) {
		case map[string]interface{}:
			if err := w.tableNamed(child, childSection, v); err != nil {
				return err
			}
		case []map[string]interface{}:
			if err := w.arrayNamed(child, childSection, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *tomlWalker) array(path []string, items []map[string]interface{}) error {
	return w.arrayNamed(path, path, items)
}

// arrayNamed turns every element of an array of tables into its own
// section, named by its "name" key or by its index.
func (w *tomlWalker) arrayNamed(keyPath, sectionPath []string, items []map[string]interface{}) error {
	for i, item := range items {
		label := strconv.Itoa(i)
		if n, ok := item["name"].(string); ok && strings.TrimSpace(n) != "" {
			label = strings.Join(strings.Fields(n), " ")
		}
		rest := make(map[string]interface{}, len(item))
		for k, v := range item {
			if k != "name" {
				rest[k] = v
			}
		}
		if err := w.tableNamed(keyPath, append(append([]string{}, sectionPath...), label), rest); err != nil {
			return err
		}
	}
	return nil
}

func hasChildTables(m map[string]interface{}) bool {
	for _, v := range m {
		switch v.(type) {
		case map[string]interface{}, []map[string]interface{}:
			return true
		}
	}
	return false
}

// formatValue renders a decoded TOML scalar the way it would be written in
// a .cfg file. Arrays become comma separated lists.
func formatValue(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			s, err := formatValue(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
