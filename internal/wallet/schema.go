package wallet

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrCorruptLedger wraps a stored list that does not match its schema.
type ErrCorruptLedger struct {
	Key string
	Err error
}

func (e *ErrCorruptLedger) Error() string {
	return fmt.Sprintf("corrupt %s value: %v", e.Key, e.Err)
}

func (e *ErrCorruptLedger) Unwrap() error { return e.Err }

var rewardsSchemaDef = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"type":        map[string]any{"enum": []any{"check-in", "video-watch", "code-scan"}},
			"earnedAt":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
		"required": []any{"id", "type", "earnedAt"},
	},
}

var shardsSchemaDef = map[string]any{
	"type":  "array",
	"items": map[string]any{"enum": []any{"Earth", "Water", "Fire"}},
}

var (
	schemaOnce     sync.Once
	rewardsSchema  *jsonschema.Schema
	shardsSchema   *jsonschema.Schema
	schemaBuildErr error
)

func compiledSchemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for url, def := range map[string]map[string]any{
			"schema://rewards.json": rewardsSchemaDef,
			"schema://shards.json":  shardsSchemaDef,
		} {
			doc, err := schemaDoc(def)
			if err != nil {
				schemaBuildErr = err
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				schemaBuildErr = fmt.Errorf("add resource %s: %w", url, err)
				return
			}
		}
		if rewardsSchema, schemaBuildErr = c.Compile("schema://rewards.json"); schemaBuildErr != nil {
			return
		}
		shardsSchema, schemaBuildErr = c.Compile("schema://shards.json")
	})
	return rewardsSchema, shardsSchema, schemaBuildErr
}

// schemaDoc round-trips def through JSON. The compiler expects the
// value shapes produced by encoding/json, not Go literals.
func schemaDoc(def map[string]any) (any, error) {
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	return doc, nil
}

// decodeList validates raw against schema and unmarshals it into out.
func decodeList(key, raw string, schema *jsonschema.Schema, out any) error {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return &ErrCorruptLedger{Key: key, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return &ErrCorruptLedger{Key: key, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &ErrCorruptLedger{Key: key, Err: err}
	}
	return nil
}
