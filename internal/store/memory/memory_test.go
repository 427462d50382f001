package memory

import (
	"context"
	"testing"
	"time"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

func seedProject(t *testing.T, s *Store, name string) *types.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), types.ProjectDraft{
		Name:      name,
		StartDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	return p
}

func TestProjectLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Kitchen remodel")
	if p.ID == "" {
		t.Fatal("created project has no id")
	}
	if p.Status != types.ProjectPlanning {
		t.Errorf("Status = %q, want planning default", p.Status)
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Name != "Kitchen remodel" {
		t.Errorf("Name = %q", got.Name)
	}

	budget := 30000.0
	updated, err := s.UpdateProject(ctx, p.ID, types.ProjectPatch{TotalBudget: &budget})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.TotalBudget != 30000 {
		t.Errorf("TotalBudget = %v, want 30000", updated.TotalBudget)
	}
	if updated.Name != "Kitchen remodel" {
		t.Error("patch must not clear unset fields")
	}
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	s := New()
	if _, err := s.GetProject(context.Background(), "nope"); err != store.ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateTask(context.Background(), "nope", types.TaskPatch{}); err != store.ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestArchivedProjectsHiddenByDefault(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Bathroom refresh")
	archived := types.ProjectArchived
	if _, err := s.UpdateProject(ctx, p.ID, types.ProjectPatch{Status: &archived}); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	visible, err := s.ListProjects(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("got %d projects, want 0 after archiving", len(visible))
	}

	all, err := s.ListProjects(ctx, store.ListOptions{IncludeArchived: true})
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d projects with IncludeArchived, want 1", len(all))
	}

	// Archiving never deletes: the record stays fetchable by id.
	if _, err := s.GetProject(ctx, p.ID); err != nil {
		t.Errorf("GetProject() after archive error = %v", err)
	}
}

func TestListTasksScopingAndOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Deck build")
	other := seedProject(t, s, "Garage")

	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mk := func(projectID, name string, due *time.Time) *types.Task {
		task, err := s.CreateTask(ctx, types.TaskDraft{ProjectID: projectID, Name: name, DueDate: due})
		if err != nil {
			t.Fatalf("CreateTask(%s) error = %v", name, err)
		}
		return task
	}
	mk(p.ID, "no due", nil)
	mk(p.ID, "later", &later)
	mk(p.ID, "sooner", &sooner)
	mk(other.ID, "elsewhere", &sooner)

	tasks, err := s.ListTasks(ctx, store.ListOptions{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	wantOrder := []string{"sooner", "later", "no due"}
	for i, want := range wantOrder {
		if tasks[i].Name != want {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Name, want)
		}
	}
}

func TestExpenseFiltersByProjectAndTask(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Basement")
	task, err := s.CreateTask(ctx, types.TaskDraft{ProjectID: p.ID, Name: "Framing"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	mk := func(taskID string, amount float64) {
		_, err := s.CreateExpense(ctx, types.ExpenseDraft{
			ProjectID: p.ID,
			TaskID:    taskID,
			Amount:    amount,
			Date:      time.Now(),
			Category:  types.CategoryMaterials,
		})
		if err != nil {
			t.Fatalf("CreateExpense() error = %v", err)
		}
	}
	mk(task.ID, 100)
	mk("", 50)

	byTask, err := s.ListExpenses(ctx, store.ListOptions{TaskID: task.ID})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(byTask) != 1 || byTask[0].Amount != 100 {
		t.Errorf("task-scoped expenses = %+v, want one 100 expense", byTask)
	}

	byProject, err := s.ListExpenses(ctx, store.ListOptions{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(byProject) != 2 {
		t.Errorf("project-scoped expenses = %d, want 2", len(byProject))
	}
}

func TestSearchMatchesCaseInsensitiveSubstring(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Kitchen remodel")
	if _, err := s.CreateTask(ctx, types.TaskDraft{ProjectID: p.ID, Name: "Hang Drywall"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := s.CreateTask(ctx, types.TaskDraft{ProjectID: p.ID, Name: "Paint ceiling"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	hits, err := s.Search(ctx, types.EntityTask, "drywall")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Hang Drywall" {
		t.Errorf("hits = %+v, want single Hang Drywall", hits)
	}

	none, err := s.Search(ctx, types.EntityTask, "plumbing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("hits = %+v, want none", none)
	}
}

func TestDocumentTagsDefaultToEmptySlice(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := seedProject(t, s, "Attic")
	doc, err := s.CreateDocument(ctx, types.DocumentDraft{
		ProjectID:    p.ID,
		Name:         "Permit",
		Type:         types.DocumentPermit,
		UploadedDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
	if doc.Tags == nil {
		t.Error("Tags = nil, want empty slice")
	}
}
