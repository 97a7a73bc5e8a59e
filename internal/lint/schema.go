package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema describes the JSON object accepted in a BEGIN mktoc comment.
const configSchema = `{
  "type": "object",
  "properties": {
    "min_depth": {"type": "integer", "minimum": 1, "maximum": 6},
    "max_depth": {"type": "integer", "minimum": 1, "maximum": 6},
    "wrap_in_details": {"type": "boolean"}
  },
  "additionalProperties": false
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", strings.NewReader(configSchema)); err != nil {
		return nil, fmt.Errorf("failed to load config schema: %w", err)
	}
	schema, err := compiler.Compile("config.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}
	return schema, nil
})

// validateConfig checks raw embedded JSON against configSchema and returns
// one message per violation.
func validateConfig(raw string) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return []string{fmt.Sprintf("not valid JSON: %v", err)}, nil
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var msgs []string
	collectLeaves(ve, &msgs)
	return msgs, nil
}

func collectLeaves(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("at %s: %s", loc, ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, msgs)
	}
}
