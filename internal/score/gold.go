// Package score measures a findings report against seeded ground truth.
// Gold records name the defects a corrupted fixture is known to contain;
// the scorer matches candidate findings one-to-one against them and
// reports precision, recall and F1 per finding type and in aggregate.
package score

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// GoldRecord is one seeded ground-truth defect.
type GoldRecord struct {
	Type         string `json:"type"`
	Variable     string `json:"variable"`
	Expected     any    `json:"expected,omitempty"`
	Observed     any    `json:"observed,omitempty"`
	RowsAffected int    `json:"rows_affected,omitempty"`
}

const goldSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["type", "variable"],
    "properties": {
      "type": { "type": "string", "minLength": 1 },
      "variable": { "type": "string", "minLength": 1 },
      "rows_affected": { "type": "integer", "minimum": 0 }
    }
  }
}`

var goldSchemaLoader = gojsonschema.NewStringLoader(goldSchemaJSON)

// LoadGold reads and validates a gold.json file.
func LoadGold(path string) ([]GoldRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("score: read gold %q: %w", path, err)
	}
	result, err := gojsonschema.Validate(goldSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("score: validate gold %q: %w", path, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("score: gold %q: %s", path, result.Errors()[0])
	}
	var gold []GoldRecord
	if err := json.Unmarshal(data, &gold); err != nil {
		return nil, fmt.Errorf("score: decode gold %q: %w", path, err)
	}
	return gold, nil
}
