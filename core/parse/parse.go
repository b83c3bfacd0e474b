package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrEmptyContent is returned when the content is empty or whitespace-only.
var ErrEmptyContent = errors.New("empty content")

// Strict unmarshals content into T without any recovery.
//
// Example usage:
//
//	type Event struct {
//	    Name string `json:"name"`
//	}
//
//	events, err := Strict[[]Event](`[{"name": "Dom Dolla"}]`)
func Strict[T any](content string) (T, error) {
	var result T
	if strings.TrimSpace(content) == "" {
		return result, ErrEmptyContent
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T: %w", result, err)
	}
	return result, nil
}

// Lenient unmarshals content into T, repairing malformed JSON when the strict
// decode fails.
//
// Recovery order:
//  1. strict decode
//  2. jsonrepair, then decode
//  3. unwrap {"type": ..., "value": ...} envelopes in the repaired JSON, then decode
//
// Example usage:
//
//	// Truncated by a token limit, still recovered
//	events, err := Lenient[[]Event](`[{"name": "Dom Dolla"}, {"name": "John Su`)
func Lenient[T any](content string) (T, error) {
	result, err := Strict[T](content)
	if err == nil || errors.Is(err, ErrEmptyContent) {
		return result, err
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to repair JSON: unmarshal error: %w, repair error: %v", err, repairErr)
	}

	var repairedResult T
	err = json.Unmarshal([]byte(repaired), &repairedResult)
	if err == nil {
		return repairedResult, nil
	}

	// Models sometimes confuse a JSON schema with the data it describes
	if unwrapped, unwrapErr := unwrapSchemaValues(repaired); unwrapErr == nil {
		var unwrappedResult T
		if json.Unmarshal([]byte(unwrapped), &unwrappedResult) == nil {
			return unwrappedResult, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} object in
// jsonStr with its value.
//
// Example input:
//
//	[{"name": {"type": "string", "value": "Dom Dolla"}}]
//
// Example output:
//
//	[{"name":"Dom Dolla"}]
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	out, err := json.Marshal(unwrap(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func unwrap(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return unwrap(value)
			}
		}
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[key] = unwrap(val)
		}
		return out

	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = unwrap(val)
		}
		return out

	default:
		return data
	}
}
