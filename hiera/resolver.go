// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package hiera resolves batch data using a fact driven hierarchy of overrides
package hiera

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	iu "github.com/choria-io/bootstrap/internal/util"
	"github.com/choria-io/bootstrap/model"
)

const (
	// MergeFirst applies only the first matching override
	MergeFirst = "first"
	// MergeDeep applies every matching override in order, later ones win
	MergeDeep = "deep"
)

var placeholderRe = regexp.MustCompile(`{{\s*(.*?)\s*}}`)

// Options adjusts how data is resolved
type Options struct {
	// DataKey is the key holding the base data, defaults to data
	DataKey string
}

// DefaultOptions reads base data from the data key
var DefaultOptions = Options{DataKey: "data"}

// Hierarchy is the ordered list of override keys and how they merge
type Hierarchy struct {
	Order []string `json:"order" yaml:"order"`
	Merge string   `json:"merge" yaml:"merge"`
}

// ResolveYaml parses a YAML or JSON document and resolves its data
func ResolveYaml(data []byte, facts map[string]any, opts Options, log model.Logger) (map[string]any, error) {
	var root map[string]any
	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, err
	}

	return Resolve(root, facts, opts, log)
}

// ResolveFile resolves the data in a YAML or JSON file
func ResolveFile(path string, facts map[string]any, opts Options, log model.Logger) (map[string]any, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Debug("Resolving data file", "file", path)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var root map[string]any
		err = json.Unmarshal(body, &root)
		if err != nil {
			return nil, err
		}

		return Resolve(root, facts, opts, log)
	}

	return ResolveYaml(body, facts, opts, log)
}

// Resolve merges the overrides selected by facts over the base data and expands placeholders, root is not modified
func Resolve(root map[string]any, facts map[string]any, opts Options, log model.Logger) (map[string]any, error) {
	if opts.DataKey == "" {
		opts.DataKey = DefaultOptions.DataKey
	}

	hierarchy, err := parseHierarchy(root)
	if err != nil {
		return nil, err
	}

	result := map[string]any{}
	if raw, ok := root[opts.DataKey]; ok && raw != nil {
		data, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be a map", opts.DataKey)
		}
		result = normalizeNumericValues(iu.CloneMap(data)).(map[string]any)
	}

	overrides := map[string]any{}
	if raw, ok := root["overrides"]; ok && raw != nil {
		overrides, ok = raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("overrides must be a map")
		}
	}

	for _, entry := range hierarchy.Order {
		key, matched, err := applyFactsString(entry, facts)
		if err != nil {
			return nil, fmt.Errorf("hierarchy entry %q: %w", entry, err)
		}

		if !matched {
			if log != nil {
				log.Debug("Skipping hierarchy entry with missing facts", "entry", entry)
			}
			continue
		}

		raw, ok := overrides[key]
		if !ok || raw == nil {
			continue
		}

		override, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("override %q must be a map", key)
		}
		override = normalizeNumericValues(iu.CloneMap(override)).(map[string]any)

		if log != nil {
			log.Debug("Applying override", "override", key, "merge", hierarchy.Merge)
		}

		if hierarchy.Merge == MergeFirst {
			result = iu.ShallowMerge(result, override)
			break
		}

		result = iu.DeepMergeMap(result, override)
	}

	expanded, err := expandExprValuesRecursively(result, facts)
	if err != nil {
		return nil, err
	}

	return expanded.(map[string]any), nil
}

func parseHierarchy(root map[string]any) (*Hierarchy, error) {
	hierarchy := &Hierarchy{Order: []string{"default"}, Merge: MergeFirst}

	raw, ok := root["hierarchy"]
	if !ok || raw == nil {
		return hierarchy, nil
	}

	hm, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("hierarchy must be a map")
	}

	if order, ok := hm["order"]; ok {
		list, ok := order.([]any)
		if !ok {
			return nil, fmt.Errorf("hierarchy.order must be a list")
		}

		hierarchy.Order = []string{}
		for _, entry := range list {
			s, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("hierarchy.order must contain only strings")
			}
			hierarchy.Order = append(hierarchy.Order, s)
		}
	}

	if merge, ok := hm["merge"]; ok {
		s, ok := merge.(string)
		if !ok {
			return nil, fmt.Errorf("hierarchy.merge must be a string")
		}

		switch s {
		case MergeFirst, MergeDeep:
			hierarchy.Merge = s
		default:
			return nil, fmt.Errorf("hierarchy.merge must be %s or %s", MergeFirst, MergeDeep)
		}
	}

	return hierarchy, nil
}

// lookupEnv is the expression environment, facts are available at the top level and below facts
type lookupEnv struct {
	facts   map[string]any
	factsJS []byte
	missed  bool
}

func newLookupEnv(facts map[string]any) (*lookupEnv, error) {
	env := iu.CloneMap(facts)
	env["facts"] = facts

	j, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}

	return &lookupEnv{facts: env, factsJS: j}, nil
}

func (e *lookupEnv) lookup(params ...any) (any, error) {
	if len(params) == 0 || len(params) > 2 {
		return nil, fmt.Errorf("lookup requires 1 or 2 arguments")
	}

	key, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("lookup requires a string argument")
	}

	res := gjson.GetBytes(e.factsJS, key)
	if !res.Exists() {
		if len(params) == 2 {
			return params[1], nil
		}

		e.missed = true
		return "", nil
	}

	return res.Value(), nil
}

func (e *lookupEnv) eval(query string) (any, error) {
	program, err := expr.Compile(query, expr.Env(e.facts), expr.Function("lookup", e.lookup))
	if err != nil {
		return nil, fmt.Errorf("expr compile error for '%s': %w", query, err)
	}

	return expr.Run(program, e.facts)
}

// applyFactsString replaces placeholders with their values, matched is false when any lookup found no value
func applyFactsString(template string, facts map[string]any) (string, bool, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(template, -1)
	if matches == nil {
		return template, true, nil
	}

	env, err := newLookupEnv(facts)
	if err != nil {
		return "", false, err
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(template[last:m[0]])

		val, err := env.eval(template[m[2]:m[3]])
		if err != nil {
			return "", false, err
		}
		if val != nil {
			fmt.Fprint(&sb, val)
		}

		last = m[1]
	}
	sb.WriteString(template[last:])

	return sb.String(), !env.missed, nil
}

func expandExprValuesRecursively(value any, facts map[string]any) (any, error) {
	switch v := value.(type) {
	case string:
		matches := placeholderRe.FindAllStringSubmatch(v, -1)
		switch {
		case len(matches) == 0:
			return v, nil
		case len(matches) == 1 && matches[0][0] == strings.TrimSpace(v):
			env, err := newLookupEnv(facts)
			if err != nil {
				return nil, err
			}
			return env.eval(matches[0][1])
		default:
			res, _, err := applyFactsString(v, facts)
			return res, err
		}

	case map[string]any:
		res := make(map[string]any, len(v))
		for k, item := range v {
			ev, err := expandExprValuesRecursively(item, facts)
			if err != nil {
				return nil, err
			}
			res[k] = ev
		}
		return res, nil

	case []any:
		res := make([]any, len(v))
		for i, item := range v {
			ev, err := expandExprValuesRecursively(item, facts)
			if err != nil {
				return nil, err
			}
			res[i] = ev
		}
		return res, nil

	default:
		return v, nil
	}
}

// normalizeNumericValues turns whole numbers of any numeric type into int so merged data compares consistently
func normalizeNumericValues(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumericValues(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumericValues(item)
		}
		return v
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return v
	case float32:
		return normalizeNumericValues(float64(v))
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
		return v
	case uint32:
		return int(v)
	case uint:
		if v <= math.MaxInt {
			return int(v)
		}
		return v
	default:
		return v
	}
}
