package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

// newTestAdapter wires an adapter to a fake Airtable server and records
// each request's query parameters for assertion.
func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("key", "appBase1")
	client.BaseURL = srv.URL
	return NewWithClient(client), srv
}

func recordsResponse(records ...map[string]any) []byte {
	data, _ := json.Marshal(map[string]any{"records": records})
	return data
}

func TestListProjectsExcludesArchivedByDefault(t *testing.T) {
	var gotQuery url.Values
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(recordsResponse(map[string]any{
			"id":          "rec1",
			"createdTime": "2025-03-01T10:00:00Z",
			"fields": map[string]any{
				"Name":         "Kitchen remodel",
				"Status":       "In Progress",
				"Total Budget": 25000.0,
				"Start Date":   "2025-02-15",
			},
		}))
	})

	projects, err := adapter.ListProjects(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}

	wantFormula := "NOT({Status} = 'Archived')"
	if got := gotQuery.Get("filterByFormula"); got != wantFormula {
		t.Errorf("filterByFormula = %q, want %q", got, wantFormula)
	}
	if got := gotQuery.Get("sort[0][field]"); got != "Start Date" {
		t.Errorf("sort field = %q, want %q", got, "Start Date")
	}
	if got := gotQuery.Get("sort[0][direction]"); got != "desc" {
		t.Errorf("sort direction = %q, want %q", got, "desc")
	}

	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	p := projects[0]
	if p.ID != "rec1" || p.Name != "Kitchen remodel" {
		t.Errorf("unexpected project: %+v", p)
	}
	if p.Status != types.ProjectInProgress {
		t.Errorf("Status = %q, want %q", p.Status, types.ProjectInProgress)
	}
	if p.TotalBudget != 25000 {
		t.Errorf("TotalBudget = %v, want 25000", p.TotalBudget)
	}
}

func TestListProjectsIncludeArchivedDropsStatusFilter(t *testing.T) {
	var gotQuery url.Values
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(recordsResponse())
	})

	_, err := adapter.ListProjects(context.Background(), store.ListOptions{IncludeArchived: true})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if got := gotQuery.Get("filterByFormula"); got != "" {
		t.Errorf("filterByFormula = %q, want empty", got)
	}
}

func TestListTasksScopedToProject(t *testing.T) {
	var gotQuery url.Values
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(recordsResponse())
	})

	_, err := adapter.ListTasks(context.Background(), store.ListOptions{ProjectID: "recProj1"})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}

	want := "AND(NOT({Status} = 'Archived'), {Project} = 'recProj1')"
	if got := gotQuery.Get("filterByFormula"); got != want {
		t.Errorf("filterByFormula = %q, want %q", got, want)
	}
}

func TestListTasksOrdersNilDueDatesLast(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(recordsResponse(
			map[string]any{
				"id": "recNoDue", "createdTime": "2025-03-01T10:00:00Z",
				"fields": map[string]any{"Name": "Paint", "Status": "To Do"},
			},
			map[string]any{
				"id": "recLater", "createdTime": "2025-03-01T10:00:00Z",
				"fields": map[string]any{"Name": "Tile", "Status": "To Do", "Due Date": "2025-06-01"},
			},
			map[string]any{
				"id": "recSooner", "createdTime": "2025-03-01T10:00:00Z",
				"fields": map[string]any{"Name": "Demo", "Status": "To Do", "Due Date": "2025-04-01"},
			},
		))
	})

	tasks, err := adapter.ListTasks(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	wantOrder := []string{"recSooner", "recLater", "recNoDue"}
	for i, want := range wantOrder {
		if tasks[i].ID != want {
			t.Errorf("tasks[%d].ID = %q, want %q", i, tasks[i].ID, want)
		}
	}
}

func TestListFollowsOffsetPagination(t *testing.T) {
	calls := 0
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{
					"id": "rec1", "createdTime": "2025-03-01T10:00:00Z",
					"fields": map[string]any{"Name": "First"},
				}},
				"offset": "page2",
			})
			return
		}
		w.Write(recordsResponse(map[string]any{
			"id": "rec2", "createdTime": "2025-03-01T10:00:00Z",
			"fields": map[string]any{"Name": "Second"},
		}))
	})

	projects, err := adapter.ListProjects(context.Background(), store.ListOptions{IncludeArchived: true})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
	if len(projects) != 2 {
		t.Errorf("got %d projects, want 2", len(projects))
	}
}

func TestCreateTaskDefaultsAndRelations(t *testing.T) {
	var gotBody writeRequest
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "recNew", "createdTime": "2025-03-01T10:00:00Z",
			"fields": map[string]any{
				"Name":    "Demo walls",
				"Status":  "To Do",
				"Project": []string{"recProj1"},
			},
		})
	})

	task, err := adapter.CreateTask(context.Background(), types.TaskDraft{
		ProjectID:    "recProj1",
		Name:         "Demo walls",
		Dependencies: []string{"recDep1", "recDep2"},
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if got := gotBody.Fields["Status"]; got != "To Do" {
		t.Errorf("Status field = %v, want To Do", got)
	}
	project, ok := gotBody.Fields["Project"].([]any)
	if !ok || len(project) != 1 || project[0] != "recProj1" {
		t.Errorf("Project field = %v, want one-element array", gotBody.Fields["Project"])
	}
	deps, ok := gotBody.Fields["Dependencies"].([]any)
	if !ok || len(deps) != 2 {
		t.Errorf("Dependencies field = %v, want two-element array", gotBody.Fields["Dependencies"])
	}
	if _, present := gotBody.Fields["Due Date"]; present {
		t.Error("Due Date should be omitted when unset")
	}

	if task.ID != "recNew" || task.Status != types.TaskTodo {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestDecodeExpenseDefaultsUnknownEnums(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "recExp", "createdTime": "2025-03-01T10:00:00Z",
			"fields": map[string]any{
				"Amount":         120.5,
				"Category":       "Mystery",
				"Payment Method": "Barter",
				"Date":           "2025-03-10",
			},
		})
	})

	expense, err := adapter.GetExpense(context.Background(), "recExp")
	if err != nil {
		t.Fatalf("GetExpense() error = %v", err)
	}
	if expense.Category != types.CategoryOther {
		t.Errorf("Category = %q, want other", expense.Category)
	}
	if expense.PaymentMethod != types.PaymentCash {
		t.Errorf("PaymentMethod = %q, want cash", expense.PaymentMethod)
	}
	if expense.Date.Format("2006-01-02") != "2025-03-10" {
		t.Errorf("Date = %v, want 2025-03-10", expense.Date)
	}
}

func TestGetNotFoundMapsToErrNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "NOT_FOUND", "message": "Record not found"}}`))
	})

	_, err := adapter.GetProject(context.Background(), "recMissing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	var reqErr *store.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *store.RequestError", err)
	}
	if reqErr.Backend != "airtable" || reqErr.Reason != "Record not found" {
		t.Errorf("unexpected RequestError: %+v", reqErr)
	}
}

func TestRejectedStatusMapsToErrRejected(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "INVALID_FILTER_BY_FORMULA"}`))
	})

	_, err := adapter.ListProjects(context.Background(), store.ListOptions{})
	if !errors.Is(err, store.ErrRejected) {
		t.Errorf("error = %v, want ErrRejected", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Error("422 must not unwrap to ErrNotFound")
	}
}

func TestTransportFailureMapsToErrUnavailable(t *testing.T) {
	client := NewClient("key", "appBase1")
	client.BaseURL = "http://127.0.0.1:1"
	client.HTTPClient = &http.Client{Timeout: 200 * time.Millisecond}
	adapter := NewWithClient(client)

	_, err := adapter.ListProjects(context.Background(), store.ListOptions{})
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestSearchUsesSearchFormula(t *testing.T) {
	var gotQuery url.Values
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(recordsResponse(map[string]any{
			"id": "recT1", "createdTime": "2025-03-01T10:00:00Z",
			"fields": map[string]any{"Name": "Hang drywall"},
		}))
	})

	results, err := adapter.Search(context.Background(), types.EntityTask, "drywall")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := "SEARCH('drywall', {Name})"
	if got := gotQuery.Get("filterByFormula"); got != want {
		t.Errorf("filterByFormula = %q, want %q", got, want)
	}
	if len(results) != 1 || results[0].Name != "Hang drywall" {
		t.Errorf("unexpected results: %+v", results)
	}
	if results[0].Entity != types.EntityTask {
		t.Errorf("Entity = %q, want task", results[0].Entity)
	}
}
