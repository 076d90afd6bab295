// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://choria.io/schemas/bootstrap/v1/batch.json"

//go:embed schema.json
var schemaJSON []byte

var (
	compiled   *jsonschema.Schema
	compileErr error
	compileMu  sync.Once
)

// Schema returns the JSON schema batch documents are validated against
func Schema() []byte {
	return schemaJSON
}

func batchSchema() (*jsonschema.Schema, error) {
	compileMu.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		err = c.AddResource(schemaURL, doc)
		if err != nil {
			compileErr = err
			return
		}

		compiled, compileErr = c.Compile(schemaURL)
	})

	return compiled, compileErr
}

// ValidateDocument validates a YAML or JSON batch document against the batch schema
func ValidateDocument(body []byte) error {
	sch, err := batchSchema()
	if err != nil {
		return fmt.Errorf("could not compile batch schema: %w", err)
	}

	jb, err := yaml.YAMLToJSON(body)
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jb))
	if err != nil {
		return err
	}

	return sch.Validate(inst)
}
