package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/model"
)

// Decode parses a full generation reply. The result keeps the reply's key
// order and key set, including keys outside the catalog.
func Decode(text string) (model.Suggestions, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return model.Suggestions{}, err
	}
	if err := catalog.ReplySchema().VisitJSON(obj.values, openapi3.MultiErrors()); err != nil {
		return model.Suggestions{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	var out model.Suggestions
	for _, key := range obj.keys {
		entry, err := toSuggestion(key, obj.values[key])
		if err != nil {
			return model.Suggestions{}, err
		}
		out.Set(entry)
	}
	return out, nil
}

// DecodeField parses a single-field regeneration reply. Keys other than field
// are ignored.
func DecodeField(text, field string) (model.FieldSuggestion, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return model.FieldSuggestion{}, err
	}
	if err := catalog.FieldReplySchema(field).VisitJSON(obj.values, openapi3.MultiErrors()); err != nil {
		return model.FieldSuggestion{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return toSuggestion(field, obj.values[field])
}

type orderedObject struct {
	keys   []string
	values map[string]any
}

func decodeObject(text string) (orderedObject, error) {
	payload := extractJSON(text)
	if payload == "" {
		return orderedObject{}, fmt.Errorf("%w: no JSON object found", ErrMalformedReply)
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	if err := expectDelim(dec, '{'); err != nil {
		return orderedObject{}, err
	}

	obj := orderedObject{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return orderedObject{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
		}
		key, ok := tok.(string)
		if !ok {
			return orderedObject{}, fmt.Errorf("%w: expected object key, got %v", ErrMalformedReply, tok)
		}
		if _, dup := obj.values[key]; dup {
			return orderedObject{}, fmt.Errorf("%w: duplicate key %q", ErrMalformedReply, key)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return orderedObject{}, fmt.Errorf("%w: value for %q: %v", ErrMalformedReply, key, err)
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return orderedObject{}, fmt.Errorf("%w: value for %q: %v", ErrMalformedReply, key, err)
		}
		obj.keys = append(obj.keys, key)
		obj.values[key] = value
	}

	if err := expectDelim(dec, '}'); err != nil {
		return orderedObject{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return orderedObject{}, fmt.Errorf("%w: trailing data after object", ErrMalformedReply)
	}
	return obj, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedReply, want, tok)
	}
	return nil
}

func toSuggestion(field string, value any) (model.FieldSuggestion, error) {
	pair, ok := value.([]any)
	if !ok || len(pair) != 2 {
		return model.FieldSuggestion{}, fmt.Errorf("%w: %q is not a [text, confidence] pair", ErrMalformedReply, field)
	}
	text, ok := pair[0].(string)
	if !ok {
		return model.FieldSuggestion{}, fmt.Errorf("%w: %q text must be a string", ErrMalformedReply, field)
	}
	confidence, ok := pair[1].(float64)
	if !ok {
		return model.FieldSuggestion{}, fmt.Errorf("%w: %q confidence must be a number", ErrMalformedReply, field)
	}
	return model.FieldSuggestion{Field: field, Text: text, Confidence: confidence}, nil
}

// extractJSON trims code fences or prose around the reply object.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
