// Package normalize turns the inconsistent response bodies the MindTrack API
// returns into canonical payloads and fills in the derived fields the views
// depend on.
package normalize

import (
	"encoding/json"
)

// Shape is the payload shape a caller expects from an endpoint.
type Shape int

const (
	// Collection expects a JSON array of entities.
	Collection Shape = iota
	// Single expects one JSON object.
	Single
)

// Envelope classifies how deeply a response body wraps its logical payload.
// Different endpoints return the payload bare, under {"data": ...}, or under
// {"data": {"data": ...}}.
type Envelope int

const (
	// Bare means the body is the payload itself.
	Bare Envelope = iota
	// Wrapped means the payload sits under one "data" key.
	Wrapped
	// DoubleWrapped means the payload sits under two nested "data" keys.
	DoubleWrapped
	// None means no value of the expected shape was found at any level.
	None
)

// maxUnwrap bounds how many "data" levels Normalize peels off.
const maxUnwrap = 2

// emptyValue returns the canonical empty payload for a shape: an empty array
// for collections, null for single objects. Malformed or absent payloads are
// a normal transient state (204 responses, half-populated backends), so they
// never surface as errors.
func emptyValue(shape Shape) json.RawMessage {
	if shape == Collection {
		return json.RawMessage("[]")
	}
	return json.RawMessage("null")
}

// matches reports whether a decoded value has the expected shape. An object
// that still carries a "data" key is treated as a wrapper, not a payload, so
// that {"data": {...}} asked for as Single yields the inner object.
func matches(v interface{}, shape Shape) bool {
	switch shape {
	case Collection:
		_, ok := v.([]interface{})
		return ok
	default:
		m, ok := v.(map[string]interface{})
		if !ok {
			return false
		}
		_, wrapper := m["data"]
		return !wrapper
	}
}

// Detect classifies the envelope of a raw body with respect to the expected
// shape. It never modifies raw.
func Detect(raw []byte, shape Shape) Envelope {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return None
	}
	for depth := 0; depth <= maxUnwrap; depth++ {
		if matches(v, shape) {
			return Envelope(depth)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return None
		}
		inner, ok := m["data"]
		if !ok {
			return None
		}
		v = inner
	}
	return None
}

// Normalize strips up to two levels of {"data": ...} wrapping from a raw
// response body and returns the canonical payload for the expected shape.
// If no matching value is found at any level it returns an empty array
// (Collection) or null (Single). The input is never mutated.
func Normalize(raw []byte, shape Shape) json.RawMessage {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return emptyValue(shape)
	}
	for depth := 0; depth <= maxUnwrap; depth++ {
		if matches(v, shape) {
			out, err := json.Marshal(v)
			if err != nil {
				return emptyValue(shape)
			}
			return out
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return emptyValue(shape)
		}
		inner, ok := m["data"]
		if !ok {
			return emptyValue(shape)
		}
		v = inner
	}
	return emptyValue(shape)
}
