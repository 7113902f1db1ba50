package fr24

import "math"

// SentinelText is the placeholder the upstream service (and this package's
// formatting helpers) use for missing data. Decoded records keep "unknown" as
// the zero or nil value internally; the sentinel only appears at the
// presentation boundary.
const SentinelText = "N/A"

// DisplayText renders a decoded string for display, substituting the sentinel
// for absent values.
func DisplayText(value string) string {
	if value == "" {
		return SentinelText
	}
	return value
}

// The helpers below read optional values out of untyped JSON payloads.
// Absence at any level degrades to the type's empty value, never to an error:
// partial upstream data must not abort an otherwise successful decode.

// mapAt returns the object under key, or an empty map when the key is absent,
// null, or not an object.
func mapAt(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	return map[string]any{}
}

// sliceAt returns the array of objects under key, or nil.
func sliceAt(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}

// stringAt returns the string under key. The sentinel text maps back to the
// empty string so that decoding an already-decoded payload stays idempotent.
func stringAt(m map[string]any, key string) string {
	value, ok := m[key].(string)
	if !ok || value == SentinelText {
		return ""
	}
	return value
}

// floatAt returns the number under key and whether it was present. Zero is a
// meaningful value and is reported as present.
func floatAt(m map[string]any, key string) (float64, bool) {
	value, ok := m[key].(float64)
	return value, ok
}

// intAt returns the number under key as an integer, when it was present and
// integral.
func intAt(m map[string]any, key string) (int, bool) {
	value, ok := m[key].(float64)
	if !ok || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

// boolAt returns the boolean under key and whether it was present. False is
// preserved as meaningful data.
func boolAt(m map[string]any, key string) (bool, bool) {
	value, ok := m[key].(bool)
	return value, ok
}

func intPtr(m map[string]any, key string) *int {
	if value, ok := intAt(m, key); ok {
		return &value
	}
	return nil
}

func floatPtr(m map[string]any, key string) *float64 {
	if value, ok := floatAt(m, key); ok {
		return &value
	}
	return nil
}

func boolPtr(m map[string]any, key string) *bool {
	if value, ok := boolAt(m, key); ok {
		return &value
	}
	return nil
}
