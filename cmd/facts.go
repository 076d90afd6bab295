// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

type factsCommand struct {
	root       string
	facts      map[string]string
	query      string
	yamlOutput bool
}

func registerFactsCommand(app *fisk.Application) {
	cmd := &factsCommand{facts: map[string]string{}}

	facts := app.Command("facts", "Shows the facts conditions, hierarchies and templates can use").Action(cmd.factsAction)
	facts.Arg("query", "Performs a gjson query on the facts").StringVar(&cmd.query)
	facts.Flag("root", "Root directory the facts are gathered for").PlaceHolder("DIR").StringVar(&cmd.root)
	facts.Flag("fact", "Overrides a fact, dotted keys set nested values").PlaceHolder("KEY=VALUE").StringMapVar(&cmd.facts)
	facts.Flag("yaml", "Output facts in YAML format").UnNegatableBoolVar(&cmd.yamlOutput)
}

func (c *factsCommand) factsAction(_ *fisk.ParseContext) error {
	mgr, _, err := newManager(c.root)
	if err != nil {
		return err
	}

	if len(c.facts) > 0 {
		_, err = mgr.MergeFacts(ctx, nestedMap(c.facts))
		if err != nil {
			return err
		}
	}

	f, err := mgr.FactsRaw(ctx)
	if err != nil {
		return err
	}

	return printDocument(f, c.query, c.yamlOutput)
}

// printDocument shows the JSON document j, or the part of it selected by a gjson query, as indented JSON or YAML
func printDocument(j []byte, query string, asYAML bool) error {
	if query != "" {
		res := gjson.GetBytes(j, query)
		if !res.Exists() {
			return fmt.Errorf("query %q did not match any value", query)
		}
		j = []byte(res.Raw)
	}

	if asYAML {
		y, err := yaml.JSONToYAML(j)
		if err != nil {
			return err
		}

		fmt.Print(string(y))
		return nil
	}

	buf := bytes.NewBuffer([]byte{})
	err := json.Indent(buf, j, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(buf.String())

	return nil
}
