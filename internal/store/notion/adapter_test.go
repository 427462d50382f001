package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

func newTestAdapter(t *testing.T, databases Databases, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("secret")
	client.BaseURL = srv.URL
	return NewWithClient(client, databases)
}

func emptyQueryResponse(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "has_more": false})
}

func TestQuerySendsVersionHeaderAndStructuredFilter(t *testing.T) {
	var gotVersion, gotPath string
	var gotBody queryRequest
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("Notion-Version")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		emptyQueryResponse(w)
	})

	_, err := adapter.ListTasks(context.Background(), store.ListOptions{ProjectID: "page-proj"})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}

	if gotVersion != "2022-06-28" {
		t.Errorf("Notion-Version = %q, want 2022-06-28", gotVersion)
	}
	if gotPath != "/databases/db1/query" {
		t.Errorf("path = %q, want /databases/db1/query", gotPath)
	}

	// Two conditions compound under "and": archived exclusion plus
	// project scoping.
	and, ok := gotBody.Filter["and"].([]any)
	if !ok || len(and) != 2 {
		t.Fatalf("filter = %v, want compound with 2 conditions", gotBody.Filter)
	}
	first := and[0].(map[string]any)
	if first["property"] != "Status" {
		t.Errorf("first condition property = %v, want Status", first["property"])
	}
	sel := first["select"].(map[string]any)
	if sel["does_not_equal"] != "Archived" {
		t.Errorf("select condition = %v, want does_not_equal Archived", sel)
	}
	second := and[1].(map[string]any)
	rel := second["relation"].(map[string]any)
	if second["property"] != "Project" || rel["contains"] != "page-proj" {
		t.Errorf("second condition = %v, want Project relation contains page-proj", second)
	}

	if len(gotBody.Sorts) != 1 || gotBody.Sorts[0].Property != "Due Date" || gotBody.Sorts[0].Direction != "ascending" {
		t.Errorf("sorts = %+v, want Due Date ascending", gotBody.Sorts)
	}
}

func TestSingleConditionFilterIsNotCompound(t *testing.T) {
	var gotBody queryRequest
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		emptyQueryResponse(w)
	})

	_, err := adapter.ListProjects(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}

	if _, compound := gotBody.Filter["and"]; compound {
		t.Errorf("filter = %v, want bare condition for single clause", gotBody.Filter)
	}
	if gotBody.Filter["property"] != "Status" {
		t.Errorf("filter = %v, want Status condition", gotBody.Filter)
	}
}

func TestPerEntityDatabaseRouting(t *testing.T) {
	var gotPaths []string
	databases := Databases{
		Default:  "shared",
		ByEntity: map[types.Entity]string{types.EntityTask: "tasks-db"},
	}
	adapter := newTestAdapter(t, databases, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		emptyQueryResponse(w)
	})

	ctx := context.Background()
	if _, err := adapter.ListTasks(ctx, store.ListOptions{}); err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if _, err := adapter.ListExpenses(ctx, store.ListOptions{}); err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}

	want := []string{"/databases/tasks-db/query", "/databases/shared/query"}
	for i, p := range want {
		if gotPaths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, gotPaths[i], p)
		}
	}
}

func TestCreateTaskOmitsUnsetProperties(t *testing.T) {
	var gotBody createPageRequest
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pages" {
			t.Errorf("request = %s %s, want POST /pages", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id":           "page-new",
			"created_time": "2025-03-01T10:00:00Z",
			"properties": map[string]any{
				"Name":   map[string]any{"title": []map[string]any{{"plain_text": "Demo walls"}}},
				"Status": map[string]any{"select": map[string]any{"name": "To Do"}},
			},
		})
	})

	task, err := adapter.CreateTask(context.Background(), types.TaskDraft{
		ProjectID: "page-proj",
		Name:      "Demo walls",
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if gotBody.Parent.DatabaseID != "db1" {
		t.Errorf("parent database = %q, want db1", gotBody.Parent.DatabaseID)
	}
	for _, absent := range []string{"Description", "Assigned To", "Due Date", "Dependencies"} {
		if _, present := gotBody.Properties[absent]; present {
			t.Errorf("property %q should be omitted when unset", absent)
		}
	}
	if _, present := gotBody.Properties["Status"]; !present {
		t.Error("Status property should default to To Do")
	}
	if _, present := gotBody.Properties["Project"]; !present {
		t.Error("Project relation should be set")
	}

	if task.ID != "page-new" || task.Status != types.TaskTodo {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestUpdateSendsOnlyPatchedProperties(t *testing.T) {
	var gotBody updatePageRequest
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/pages/page-1" {
			t.Errorf("request = %s %s, want PATCH /pages/page-1", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "page-1", "created_time": "2025-03-01T10:00:00Z",
			"properties": map[string]any{},
		})
	})

	archived := types.TaskArchived
	_, err := adapter.UpdateTask(context.Background(), "page-1", types.TaskPatch{Status: &archived})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if len(gotBody.Properties) != 1 {
		t.Errorf("properties = %v, want only Status", gotBody.Properties)
	}
	status := gotBody.Properties["Status"].(map[string]any)
	sel := status["select"].(map[string]any)
	if sel["name"] != "Archived" {
		t.Errorf("Status = %v, want Archived", sel["name"])
	}
}

func TestQueryFollowsCursorPagination(t *testing.T) {
	calls := 0
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req queryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.StartCursor == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{{
					"id": "page-1", "created_time": "2025-03-01T10:00:00Z",
					"properties": map[string]any{},
				}},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"id": "page-2", "created_time": "2025-03-01T10:00:00Z",
				"properties": map[string]any{},
			}},
			"has_more": false,
		})
	})

	photos, err := adapter.ListPhotos(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("ListPhotos() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
	if len(photos) != 2 {
		t.Errorf("got %d photos, want 2", len(photos))
	}
}

func TestGetNotFoundMapsToErrNotFound(t *testing.T) {
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": "object_not_found", "message": "Could not find page"}`))
	})

	_, err := adapter.GetProject(context.Background(), "page-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	var reqErr *store.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *store.RequestError", err)
	}
	if reqErr.Backend != "notion" || reqErr.Reason != "Could not find page" {
		t.Errorf("unexpected RequestError: %+v", reqErr)
	}
}

func TestSearchUsesTitleFilterForTitleColumns(t *testing.T) {
	var gotBody queryRequest
	adapter := newTestAdapter(t, Databases{Default: "db1"}, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		emptyQueryResponse(w)
	})

	ctx := context.Background()
	if _, err := adapter.Search(ctx, types.EntityTask, "drywall"); err != nil {
		t.Fatalf("Search(task) error = %v", err)
	}
	if _, ok := gotBody.Filter["title"]; !ok {
		t.Errorf("task search filter = %v, want title condition", gotBody.Filter)
	}

	if _, err := adapter.Search(ctx, types.EntityExpense, "hardware"); err != nil {
		t.Fatalf("Search(expense) error = %v", err)
	}
	if _, ok := gotBody.Filter["rich_text"]; !ok {
		t.Errorf("expense search filter = %v, want rich_text condition", gotBody.Filter)
	}
}
