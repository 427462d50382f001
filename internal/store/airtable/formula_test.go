package airtable

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "eq",
			expr: Eq("Status", "Completed"),
			want: "{Status} = 'Completed'",
		},
		{
			name: "not",
			expr: Not(Eq("Status", "Archived")),
			want: "NOT({Status} = 'Archived')",
		},
		{
			name: "search",
			expr: Search("drywall", "Name"),
			want: "SEARCH('drywall', {Name})",
		},
		{
			name: "and of two",
			expr: And(Not(Eq("Status", "Archived")), Eq("Project", "rec123")),
			want: "AND(NOT({Status} = 'Archived'), {Project} = 'rec123')",
		},
		{
			name: "and of one renders bare",
			expr: And(Eq("Owner", "user1")),
			want: "{Owner} = 'user1'",
		},
		{
			name: "and of zero renders true",
			expr: And(),
			want: "TRUE()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.expr); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEscapesValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"single quote", "O'Brien Construction", `{Vendor} = 'O\'Brien Construction'`},
		{"backslash", `C:\receipts`, `{Vendor} = 'C:\\receipts'`},
		{"backslash then quote", `\'`, `{Vendor} = '\\\''`},
		{"injection attempt", "') = TRUE(), AND('", `{Vendor} = '\') = TRUE(), AND(\''`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(Eq("Vendor", tt.value)); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
