package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUnparseable is returned by SmartParse when no strategy could decode the input.
var ErrUnparseable = errors.New("SMART_PARSE_FAILED: all parsing strategies failed for input")

// RepairJSON fixes the usual damage in hand-edited or truncated JSON: unquoted keys,
// single quotes, trailing commas, unclosed arrays/objects and code fences.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Hjson (comments, unquoted keys and strings, optional commas) and
// returns the equivalent standard JSON.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(jsonBytes), nil
}

// SmartParse decodes input into v, trying in order:
// 1. Standard JSON
// 2. Hjson (a superset of JSON, so valid Hjson keeps its values)
// 3. JSON repair (truncated or otherwise broken input)
//
// It returns the JSON text that finally decoded. v is zeroed between attempts.
func SmartParse(input string, v interface{}) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrUnparseable
	}

	if err := json.Unmarshal([]byte(input), v); err == nil {
		return input, nil
	}

	if hjsonResult, err := ParseHJSON(input); err == nil {
		reset(v)
		if err := json.Unmarshal([]byte(hjsonResult), v); err == nil {
			return hjsonResult, nil
		}
	}

	if repaired, err := RepairJSON(input); err == nil {
		reset(v)
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return repaired, nil
		}
	}

	reset(v)
	return "", ErrUnparseable
}

func reset(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
