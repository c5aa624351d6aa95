package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonField is one member of an ordered JSON object.
type jsonField struct {
	key   string
	value any
}

// jsonObjectWriter encodes a JSON object whose members keep their insertion
// order, encoding/json sorts map keys. Its zero value is ready to use.
type jsonObjectWriter struct {
	fields []jsonField
}

// Append adds key unconditionally.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	w.fields = append(w.fields, jsonField{key, value})
	return w
}

// Optional adds key when present is true.
func (w *jsonObjectWriter) Optional(key string, value any, present bool) *jsonObjectWriter {
	if present {
		w.Append(key, value)
	}
	return w
}

// MarshalJSON encodes the members in order.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range w.fields {
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("cannot encode %q: %w", f.key, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f.key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
