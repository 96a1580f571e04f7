package app

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

// loadSchema reads and decodes a schema file, building the validator with the
// options derived from the loaded configuration.
func (env *cmdEnv) loadSchema(path string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CannotReadSchemaError{Path: path, Err: err}
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidSchemaDocumentError{Path: path, Err: err}
	}

	if decl := gjson.GetBytes(data, "$schema"); decl.Exists() {
		if !strings.Contains(decl.String(), "draft-04") {
			env.logger.Warn("schema declares an unsupported dialect; treating as draft-04",
				"path", path, "$schema", decl.String())
		}
	}

	return jsonschema.NewSchema(doc, env.cfg.SchemaOptions()...), nil
}
