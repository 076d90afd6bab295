// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/choria-io/fisk"

	"github.com/choria-io/bootstrap/batch"
)

type renderCommand struct {
	batchSelection

	json bool
}

type listCommand struct {
	batchSelection
}

type dataCommand struct {
	batchSelection

	query      string
	yamlOutput bool
}

type presetsCommand struct {
	name string
}

func registerRenderCommand(app *fisk.Application) {
	cmd := &renderCommand{}

	render := app.Command("render", "Shows the resolved batch without running it").Action(cmd.renderAction)
	cmd.addFlags(render)
	render.Flag("json", "Render JSON instead of YAML").UnNegatableBoolVar(&cmd.json)
}

func registerListCommand(app *fisk.Application) {
	cmd := &listCommand{}

	list := app.Command("list", "Lists the steps of a batch").Alias("ls").Action(cmd.listAction)
	cmd.addFlags(list)
}

func registerDataCommand(app *fisk.Application) {
	cmd := &dataCommand{}

	data := app.Command("data", "Shows the resolved batch data").Action(cmd.dataAction)
	cmd.addFlags(data)
	data.Flag("query", "Performs a gjson query on the data").StringVar(&cmd.query)
	data.Flag("yaml", "Output YAML instead of JSON").UnNegatableBoolVar(&cmd.yamlOutput)
}

func registerPresetsCommand(app *fisk.Application) {
	cmd := &presetsCommand{}

	presets := app.Command("presets", "Lists or shows the built in batches").Action(cmd.presetsAction)
	presets.Arg("name", "Preset to show").HintAction(batch.Presets).StringVar(&cmd.name)
}

func (c *renderCommand) renderAction(_ *fisk.ParseContext) error {
	mgr, _, err := newManager(c.root)
	if err != nil {
		return err
	}

	b, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	var out []byte
	if c.json {
		out, err = json.MarshalIndent(b, "", "  ")
	} else {
		out, err = b.MarshalYAML()
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

func (c *listCommand) listAction(_ *fisk.ParseContext) error {
	mgr, _, err := newManager(c.root)
	if err != nil {
		return err
	}

	b, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	policy := b.Policy()

	fmt.Printf("Batch %s with %d steps, root %s\n", b.Source(), len(b.Steps()), mgr.Root())
	fmt.Printf("Command failures: %s, path failures: %s\n", policy.CommandFailure, policy.PathFailure)
	fmt.Println()

	for i, step := range b.Steps() {
		fmt.Printf("%3d: '%s' in %s", i, step.Command, step.DisplayDirectory())
		if step.Name != "" {
			fmt.Printf(" (%s)", step.Name)
		}
		fmt.Println()
	}

	return nil
}

func (c *dataCommand) dataAction(_ *fisk.ParseContext) error {
	mgr, _, err := newManager(c.root)
	if err != nil {
		return err
	}

	b, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	j, err := json.Marshal(b.Data())
	if err != nil {
		return err
	}

	return printDocument(j, c.query, c.yamlOutput)
}

func (c *presetsCommand) presetsAction(_ *fisk.ParseContext) error {
	if c.name == "" {
		for _, p := range batch.Presets() {
			fmt.Println(p)
		}

		return nil
	}

	body, err := batch.Preset(c.name)
	if err != nil {
		return err
	}

	fmt.Print(string(body))

	return nil
}
