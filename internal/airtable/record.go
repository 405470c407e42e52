package airtable

import "time"

// Record is one row of a table: an opaque id, the server-assigned creation
// time, and a loosely typed field map. Lookup and rollup fields arrive here
// like any other field but are read-only at the store.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// String returns the named field as a string, or "" when absent or of
// another type.
func (r *Record) String(key string) string {
	v, _ := r.Fields[key].(string)
	return v
}

// Float returns the named field as a float64, or 0 when absent.
func (r *Record) Float(key string) float64 {
	v, _ := r.Fields[key].(float64)
	return v
}

// Int truncates the named numeric field to an int.
func (r *Record) Int(key string) int {
	return int(r.Float(key))
}

// Bool returns the named checkbox field.
func (r *Record) Bool(key string) bool {
	v, _ := r.Fields[key].(bool)
	return v
}

// Strings returns a linked-record or multi-value field as a string slice.
// A scalar string field is returned as a one-element slice.
func (r *Record) Strings(key string) []string {
	switch v := r.Fields[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// FirstString returns the first element of a linked-record field, or "".
func (r *Record) FirstString(key string) string {
	if vs := r.Strings(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}
