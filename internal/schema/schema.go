// Package schema holds the per-entity field tables shared by every
// backend adapter: the bidirectional map between canonical field names
// (totalBudget) and backend display names ("Total Budget"), the property
// kind of each field, and the default sort for list calls.
//
// Only the tables are shared. Query construction is deliberately not:
// the Airtable adapter renders boolean formulas and the Notion adapter
// builds structured filter objects, and the two grammars must never be
// mixed.
package schema

import (
	"strings"

	"github.com/oakbuilt/renoplan/internal/types"
)

// Kind is the property kind of a field as the typed-property backend
// models it. The flat-record backend ignores kinds on write and relies
// on column configuration instead.
type Kind string

const (
	KindTitle       Kind = "title"
	KindRichText    Kind = "rich_text"
	KindSelect      Kind = "select"
	KindDate        Kind = "date"
	KindRelation    Kind = "relation"
	KindNumber      Kind = "number"
	KindURL         Kind = "url"
	KindMultiSelect Kind = "multi_select"
)

// Field maps one canonical field to its backend column.
type Field struct {
	Name   string // canonical camelCase name
	Column string // backend display name
	Kind   Kind
}

// Table describes one entity's backend schema.
type Table struct {
	Entity       types.Entity
	Name         string // backend table name ("Projects", "Tasks", ...)
	SortColumn   string // default sort for list calls
	SortAsc      bool
	SearchColumn string // column matched by name-substring search
	HasStatus    bool   // archived filtering applies only when true
	Fields       []Field
}

var tables = map[types.Entity]Table{
	types.EntityProject: {
		Entity:       types.EntityProject,
		Name:         "Projects",
		SortColumn:   "Start Date",
		SortAsc:      false,
		SearchColumn: "Name",
		HasStatus:    true,
		Fields: []Field{
			{Name: "name", Column: "Name", Kind: KindTitle},
			{Name: "address", Column: "Address", Kind: KindRichText},
			{Name: "status", Column: "Status", Kind: KindSelect},
			{Name: "totalBudget", Column: "Total Budget", Kind: KindNumber},
			{Name: "startDate", Column: "Start Date", Kind: KindDate},
			{Name: "targetEndDate", Column: "Target End Date", Kind: KindDate},
			{Name: "ownerId", Column: "Owner", Kind: KindRelation},
		},
	},
	types.EntityTask: {
		Entity:       types.EntityTask,
		Name:         "Tasks",
		SortColumn:   "Due Date",
		SortAsc:      true,
		SearchColumn: "Name",
		HasStatus:    true,
		Fields: []Field{
			{Name: "name", Column: "Name", Kind: KindTitle},
			{Name: "description", Column: "Description", Kind: KindRichText},
			{Name: "status", Column: "Status", Kind: KindSelect},
			{Name: "projectId", Column: "Project", Kind: KindRelation},
			{Name: "assignedTo", Column: "Assigned To", Kind: KindRichText},
			{Name: "dueDate", Column: "Due Date", Kind: KindDate},
			{Name: "dependencies", Column: "Dependencies", Kind: KindRelation},
			{Name: "estimatedCost", Column: "Estimated Cost", Kind: KindNumber},
			{Name: "actualCost", Column: "Actual Cost", Kind: KindNumber},
		},
	},
	types.EntityExpense: {
		Entity:       types.EntityExpense,
		Name:         "Expenses",
		SortColumn:   "Date",
		SortAsc:      false,
		SearchColumn: "Vendor",
		Fields: []Field{
			{Name: "amount", Column: "Amount", Kind: KindNumber},
			{Name: "category", Column: "Category", Kind: KindSelect},
			{Name: "date", Column: "Date", Kind: KindDate},
			{Name: "vendor", Column: "Vendor", Kind: KindRichText},
			{Name: "paymentMethod", Column: "Payment Method", Kind: KindSelect},
			{Name: "notes", Column: "Notes", Kind: KindRichText},
			{Name: "receiptUrl", Column: "Receipt URL", Kind: KindURL},
			{Name: "projectId", Column: "Project", Kind: KindRelation},
			{Name: "taskId", Column: "Task", Kind: KindRelation},
		},
	},
	types.EntityDocument: {
		Entity:       types.EntityDocument,
		Name:         "Documents",
		SortColumn:   "Uploaded Date",
		SortAsc:      false,
		SearchColumn: "Name",
		Fields: []Field{
			{Name: "name", Column: "Name", Kind: KindTitle},
			{Name: "type", Column: "Type", Kind: KindSelect},
			{Name: "fileUrl", Column: "File URL", Kind: KindURL},
			{Name: "uploadedDate", Column: "Uploaded Date", Kind: KindDate},
			{Name: "tags", Column: "Tags", Kind: KindMultiSelect},
			{Name: "projectId", Column: "Project", Kind: KindRelation},
		},
	},
	types.EntityPhoto: {
		Entity:       types.EntityPhoto,
		Name:         "Photos",
		SortColumn:   "Taken Date",
		SortAsc:      false,
		SearchColumn: "Caption",
		Fields: []Field{
			{Name: "fileUrl", Column: "File URL", Kind: KindURL},
			{Name: "caption", Column: "Caption", Kind: KindRichText},
			{Name: "takenDate", Column: "Taken Date", Kind: KindDate},
			{Name: "tags", Column: "Tags", Kind: KindMultiSelect},
			{Name: "location", Column: "Location", Kind: KindRichText},
			{Name: "projectId", Column: "Project", Kind: KindRelation},
			{Name: "taskId", Column: "Task", Kind: KindRelation},
		},
	},
}

// For returns the table for the given entity.
func For(e types.Entity) Table {
	return tables[e]
}

// Column translates a canonical field name to its backend column name.
func (t Table) Column(name string) (string, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Column, true
		}
	}
	return "", false
}

// Canonical translates a backend column name to its canonical field name.
func (t Table) Canonical(column string) (string, bool) {
	for _, f := range t.Fields {
		if f.Column == column {
			return f.Name, true
		}
	}
	return "", false
}

// specialDisplay covers enum values whose display form is not derivable
// by word-casing the slug.
var specialDisplay = map[string]string{
	"todo": "To Do",
}

// DisplayName converts a canonical enum value to the backend's
// human-readable select option ("in_progress" -> "In Progress").
func DisplayName(slug string) string {
	if d, ok := specialDisplay[slug]; ok {
		return d
	}
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SlugFor converts a backend select option back to its canonical enum
// value ("In Progress" -> "in_progress"). Unknown casing is normalized
// rather than rejected; adapters default empty values separately.
func SlugFor(display string) string {
	for slug, d := range specialDisplay {
		if strings.EqualFold(d, display) {
			return slug
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(display), "_"))
}
