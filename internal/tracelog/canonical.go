package tracelog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// canonicalJSON encodes scalars as compact, key-sorted JSON text. Go's
// encoding/json already sorts map[string]T keys on Marshal; disabling
// HTML escaping keeps binding-path strings (which never contain HTML-
// significant characters, but may contain '&' in theory) byte-identical
// across runs.
func canonicalJSON(scalars map[string]float64) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(scalars); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func decodeScalars(payload string) (map[string]float64, error) {
	var scalars map[string]float64
	if err := json.Unmarshal([]byte(payload), &scalars); err != nil {
		return nil, err
	}
	return scalars, nil
}
