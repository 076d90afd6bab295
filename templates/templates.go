// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/CloudyKit/jet/v6"
	"github.com/expr-lang/expr"
	"github.com/tidwall/gjson"
)

var placeholderRe = regexp.MustCompile(`{{\s*(.*?)\s*}}`)

// Env represents the template execution environment containing facts, batch data and the environment
type Env struct {
	Root    string            `json:"root" yaml:"root"`
	Facts   map[string]any    `json:"facts" yaml:"facts"`
	Data    map[string]any    `json:"data" yaml:"data"`
	Environ map[string]string `json:"environ" yaml:"environ"`

	envJSON json.RawMessage
	mu      sync.Mutex
}

func (e *Env) lookup(params ...any) (any, error) {
	if len(params) == 0 || len(params) > 2 {
		return nil, fmt.Errorf("lookup requires 1 or 2 arguments")
	}

	key, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("lookup requires a string argument")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.envJSON == nil {
		j, err := json.Marshal(e)
		if err != nil {
			return "", err
		}
		e.envJSON = j
	}

	res := gjson.GetBytes(e.envJSON, key)
	if !res.Exists() {
		if len(params) == 2 {
			return params[1], nil
		}

		return nil, fmt.Errorf("missing key '%s' in environment", key)
	}

	if res.Type == gjson.Number {
		if strings.Contains(res.Raw, ".") {
			return res.Float(), nil
		}

		return res.Int(), nil
	}

	return res.Value(), nil
}

func (e *Env) jet(params ...any) (any, error) {
	if len(params) != 1 && len(params) != 3 {
		return nil, fmt.Errorf("jet requires 1 or 3 arguments")
	}

	body, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("jet requires a string argument for template body")
	}

	left, right := "[[", "]]"
	if len(params) == 3 {
		left, ok = params[1].(string)
		if !ok {
			return nil, fmt.Errorf("jet requires a string argument for left delimiter")
		}
		right, ok = params[2].(string)
		if !ok {
			return nil, fmt.Errorf("jet requires a string argument for right delimiter")
		}
	}

	res, err := renderJet("inline", body, e, left, right)
	if err != nil {
		return nil, err
	}

	return string(res), nil
}

// RenderJet renders a Jet template using [[ ]] delimiters, facts, data and environ are available as variables
func RenderJet(name string, body []byte, env *Env) ([]byte, error) {
	return renderJet(name, string(body), env, "[[", "]]")
}

func renderJet(name string, body string, env *Env, left string, right string) ([]byte, error) {
	set := jet.NewSet(jet.NewInMemLoader(), jet.WithDelims(left, right))
	tpl, err := set.Parse(name, body)
	if err != nil {
		return nil, err
	}

	variables := jet.VarMap{
		"root":    reflect.ValueOf(env.Root),
		"facts":   reflect.ValueOf(env.Facts),
		"Facts":   reflect.ValueOf(env.Facts),
		"data":    reflect.ValueOf(env.Data),
		"Data":    reflect.ValueOf(env.Data),
		"environ": reflect.ValueOf(env.Environ),
		"Environ": reflect.ValueOf(env.Environ),
	}

	buff := bytes.NewBuffer([]byte{})
	err = tpl.Execute(buff, variables, env)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// ResolveTemplateString resolves {{ expression }} placeholders in a template string and returns the result as a string
func ResolveTemplateString(template string, env *Env) (string, error) {
	if template == "" {
		return "", nil
	}

	if !placeholderRe.MatchString(template) {
		return template, nil
	}

	return applyFactsString(template, env)
}

// ResolveTemplateTyped resolves {{ expression }} placeholders and preserves the type of single expressions
func ResolveTemplateTyped(template string, env *Env) (any, error) {
	if template == "" {
		return "", nil
	}

	trimmed := strings.TrimSpace(template)

	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	switch {
	case matches == nil:
		return template, nil
	case len(matches) == 1 && strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}"):
		return exprParse(matches[0][1], env)
	default:
		return applyFactsString(template, env)
	}
}

// ResolveCondition evaluates an expression that must produce a boolean, surrounding {{ }} are optional
func ResolveCondition(condition string, env *Env) (bool, error) {
	query := strings.TrimSpace(condition)
	if query == "" {
		return false, fmt.Errorf("empty condition")
	}

	if m := placeholderRe.FindStringSubmatch(query); m != nil && m[0] == query {
		query = m[1]
	}

	program, err := expr.Compile(query, expr.Env(env), expr.AsBool(), expr.Function("lookup", env.lookup), expr.Function("jet", env.jet))
	if err != nil {
		return false, fmt.Errorf("expr compile error for '%s': %w", query, err)
	}

	res, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}

	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("condition '%s' did not return a boolean", query)
	}

	return b, nil
}

// applyFactsString parses {{ expression }} placeholders using expr and replace them with the resulting values
func applyFactsString(template string, env *Env) (string, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(template, -1)
	if matches == nil {
		return template, nil
	}

	var result strings.Builder
	lastIndex := 0

	for _, loc := range matches {
		fullStart, fullEnd := loc[0], loc[1]
		innerStart, innerEnd := loc[2], loc[3]

		value, err := exprParse(template[innerStart:innerEnd], env)
		if err != nil {
			return "", err
		}

		result.WriteString(template[lastIndex:fullStart])
		result.WriteString(fmt.Sprint(value))

		lastIndex = fullEnd
	}

	result.WriteString(template[lastIndex:])

	return result.String(), nil
}

func exprParse(query string, env *Env) (any, error) {
	program, err := expr.Compile(query, expr.Env(env), expr.Function("lookup", env.lookup), expr.Function("jet", env.jet))
	if err != nil {
		return "", fmt.Errorf("expr compile error for '%s': %w", query, err)
	}

	return expr.Run(program, env)
}
