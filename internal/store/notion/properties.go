package notion

import "time"

const dateLayout = "2006-01-02"

// propertyBuilder accumulates a typed-property write payload. A property
// is emitted only when a value is present: Notion rejects explicit nulls
// for some property kinds, so omission is the one safe way to express
// "unset". Required fields use the unconditional setters.
type propertyBuilder struct {
	props map[string]any
}

func newProperties() *propertyBuilder {
	return &propertyBuilder{props: map[string]any{}}
}

func textFragment(value string) []map[string]any {
	return []map[string]any{
		{"text": map[string]any{"content": value}},
	}
}

func (b *propertyBuilder) title(name, value string) {
	b.props[name] = map[string]any{"title": textFragment(value)}
}

func (b *propertyBuilder) text(name, value string) {
	b.props[name] = map[string]any{"rich_text": textFragment(value)}
}

func (b *propertyBuilder) textIfSet(name, value string) {
	if value != "" {
		b.text(name, value)
	}
}

func (b *propertyBuilder) selectOption(name, value string) {
	b.props[name] = map[string]any{"select": map[string]any{"name": value}}
}

func (b *propertyBuilder) number(name string, value float64) {
	b.props[name] = map[string]any{"number": value}
}

func (b *propertyBuilder) date(name string, value time.Time) {
	if value.IsZero() {
		return
	}
	b.props[name] = map[string]any{
		"date": map[string]any{"start": value.Format(dateLayout)},
	}
}

func (b *propertyBuilder) dateIfSet(name string, value *time.Time) {
	if value != nil {
		b.date(name, *value)
	}
}

// relation writes a single-reference relation as a one-element array.
func (b *propertyBuilder) relation(name, id string) {
	if id == "" {
		return
	}
	b.props[name] = map[string]any{
		"relation": []map[string]any{{"id": id}},
	}
}

// relations writes a multi-value relation in full.
func (b *propertyBuilder) relations(name string, ids []string) {
	if len(ids) == 0 {
		return
	}
	refs := make([]map[string]any, len(ids))
	for i, id := range ids {
		refs[i] = map[string]any{"id": id}
	}
	b.props[name] = map[string]any{"relation": refs}
}

func (b *propertyBuilder) url(name, value string) {
	if value != "" {
		b.props[name] = map[string]any{"url": value}
	}
}

func (b *propertyBuilder) multiSelect(name string, values []string) {
	if len(values) == 0 {
		return
	}
	opts := make([]map[string]any, len(values))
	for i, v := range values {
		opts[i] = map[string]any{"name": v}
	}
	b.props[name] = map[string]any{"multi_select": opts}
}

// Read-side unwrapping. Every accessor applies the canonical defaulting
// policy: empty wrapped arrays and missing scalars become "", 0, nil or
// an empty slice, never an error.

func (p *page) prop(name string) property {
	return p.Properties[name]
}

func (p *page) plainText(name string) string {
	prop := p.prop(name)
	if len(prop.Title) > 0 {
		return prop.Title[0].PlainText
	}
	if len(prop.RichText) > 0 {
		return prop.RichText[0].PlainText
	}
	return ""
}

func (p *page) selectValue(name string) string {
	if s := p.prop(name).Select; s != nil {
		return s.Name
	}
	return ""
}

func (p *page) number(name string) float64 {
	if n := p.prop(name).Number; n != nil {
		return *n
	}
	return 0
}

func (p *page) dateValue(name string) time.Time {
	t, _ := p.parseDate(name)
	return t
}

func (p *page) datePtr(name string) *time.Time {
	t, ok := p.parseDate(name)
	if !ok {
		return nil
	}
	return &t
}

func (p *page) parseDate(name string) (time.Time, bool) {
	d := p.prop(name).Date
	if d == nil || d.Start == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, d.Start); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, d.Start); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// firstRelation surfaces only the first related id; single-reference
// canonical fields take the first element even when the backend allows
// multiple.
func (p *page) firstRelation(name string) string {
	if rel := p.prop(name).Relation; len(rel) > 0 {
		return rel[0].ID
	}
	return ""
}

func (p *page) relationIDs(name string) []string {
	rel := p.prop(name).Relation
	if len(rel) == 0 {
		return nil
	}
	out := make([]string, len(rel))
	for i, r := range rel {
		out[i] = r.ID
	}
	return out
}

func (p *page) urlValue(name string) string {
	return p.prop(name).URL
}

func (p *page) multiSelect(name string) []string {
	opts := p.prop(name).MultiSelect
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Name)
	}
	return out
}
