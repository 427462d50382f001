package airtable

import "time"

const dateLayout = "2006-01-02"

// fieldReader reads values out of a record's flat field object with the
// canonical defaulting policy: absent or null strings become "", absent
// numbers become 0, absent relations become empty.
type fieldReader struct {
	fields map[string]any
}

func (r fieldReader) str(column string) string {
	if v, ok := r.fields[column].(string); ok {
		return v
	}
	return ""
}

func (r fieldReader) num(column string) float64 {
	if v, ok := r.fields[column].(float64); ok {
		return v
	}
	return 0
}

func (r fieldReader) date(column string) time.Time {
	t, _ := parseDate(r.str(column))
	return t
}

func (r fieldReader) datePtr(column string) *time.Time {
	t, ok := parseDate(r.str(column))
	if !ok {
		return nil
	}
	return &t
}

// ids reads a linked-record array. Airtable always models relations as
// arrays, even single-valued ones.
func (r fieldReader) ids(column string) []string {
	raw, ok := r.fields[column].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// firstID surfaces only the first related id; single-reference canonical
// fields take the first element even if the backend holds more.
func (r fieldReader) firstID(column string) string {
	if ids := r.ids(column); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func (r fieldReader) strs(column string) []string {
	if v := r.ids(column); v != nil {
		return v
	}
	return []string{}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func dateString(t time.Time) string {
	return t.Format(dateLayout)
}

// fieldWriter accumulates a write payload under backend column names,
// emitting a field only when a value is present.
type fieldWriter struct {
	fields map[string]any
}

func newFieldWriter() *fieldWriter {
	return &fieldWriter{fields: map[string]any{}}
}

func (w *fieldWriter) set(column string, value any) {
	w.fields[column] = value
}

func (w *fieldWriter) setString(column, value string) {
	if value != "" {
		w.fields[column] = value
	}
}

func (w *fieldWriter) setDate(column string, t time.Time) {
	if !t.IsZero() {
		w.fields[column] = dateString(t)
	}
}

func (w *fieldWriter) setDatePtr(column string, t *time.Time) {
	if t != nil {
		w.fields[column] = dateString(*t)
	}
}

// setRelation writes a single-reference relation as the one-element
// array Airtable expects.
func (w *fieldWriter) setRelation(column, id string) {
	if id != "" {
		w.fields[column] = []string{id}
	}
}

func (w *fieldWriter) setRelations(column string, ids []string) {
	if len(ids) > 0 {
		w.fields[column] = ids
	}
}
