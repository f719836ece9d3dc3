package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON accepts the object form ({"1": "a"}), a list of pair objects
// ([{"paramId": 1, "value": "a"}]) or a list of tuples ([[1, "a"]]).
func (r *ValueRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode value record: %w", err)
	}

	record, err := recordFromAny(raw)
	if err != nil {
		return err
	}
	*r = record
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (r *ValueRecord) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode value record: %w", err)
	}
	record, err := recordFromAny(raw)
	if err != nil {
		return err
	}
	*r = record
	return nil
}

// RecordFromAny converts loosely typed payloads (decoded JSON/YAML, HCL
// attribute maps) into a ValueRecord.
func RecordFromAny(raw any) (ValueRecord, error) {
	return recordFromAny(raw)
}

func recordFromAny(raw any) (ValueRecord, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case ValueRecord:
		return typed.Clone(), nil
	case map[int]string:
		return ValueRecord(typed).Clone(), nil
	case map[string]string:
		out := make(ValueRecord, len(typed))
		for key, value := range typed {
			id, err := parseParamID(key)
			if err != nil {
				return nil, err
			}
			out[id] = value
		}
		return out, nil
	case map[string]any:
		out := make(ValueRecord, len(typed))
		for key, value := range typed {
			id, err := parseParamID(key)
			if err != nil {
				return nil, err
			}
			out[id] = ScalarString(value)
		}
		return out, nil
	case map[any]any:
		out := make(ValueRecord, len(typed))
		for key, value := range typed {
			id, err := parseParamID(key)
			if err != nil {
				return nil, err
			}
			out[id] = ScalarString(value)
		}
		return out, nil
	case []any:
		pairs := make([]ValuePair, 0, len(typed))
		for idx, item := range typed {
			pair, err := pairFromAny(item)
			if err != nil {
				return nil, fmt.Errorf("model: value record entry %d: %w", idx, err)
			}
			pairs = append(pairs, pair)
		}
		return RecordFromPairs(pairs), nil
	default:
		return nil, fmt.Errorf("model: unsupported value record payload %T", raw)
	}
}

func pairFromAny(item any) (ValuePair, error) {
	switch typed := item.(type) {
	case map[string]any:
		rawID, ok := typed["paramId"]
		if !ok {
			rawID, ok = typed["id"]
		}
		if !ok {
			return ValuePair{}, fmt.Errorf("missing paramId")
		}
		id, err := parseParamID(rawID)
		if err != nil {
			return ValuePair{}, err
		}
		return ValuePair{ParamID: id, Value: ScalarString(typed["value"])}, nil
	case []any:
		if len(typed) != 2 {
			return ValuePair{}, fmt.Errorf("expected [id, value] tuple, got %d items", len(typed))
		}
		id, err := parseParamID(typed[0])
		if err != nil {
			return ValuePair{}, err
		}
		return ValuePair{ParamID: id, Value: ScalarString(typed[1])}, nil
	default:
		return ValuePair{}, fmt.Errorf("unsupported pair payload %T", item)
	}
}

func parseParamID(raw any) (int, error) {
	text := strings.TrimSpace(ScalarString(raw))
	id, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("model: invalid param id %q", text)
	}
	return id, nil
}

// ScalarString renders a decoded scalar (JSON number, float, bool) as the
// string a ValueRecord stores.
func ScalarString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

func sortedIDs(record ValueRecord) []int {
	ids := make([]int, 0, len(record))
	for id := range record {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
