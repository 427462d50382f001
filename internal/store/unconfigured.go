package store

import (
	"context"
	"fmt"

	"github.com/oakbuilt/renoplan/internal/types"
)

// Unconfigured returns a Store whose every operation fails with
// ErrNotConfigured. Selecting a backend without credentials still
// yields a running server; only data operations are refused, so the
// availability report and health endpoint stay reachable.
func Unconfigured(backend string) Store {
	return unconfigured{backend: backend}
}

type unconfigured struct {
	backend string
}

func (u unconfigured) err() error {
	return fmt.Errorf("%s backend: %w", u.backend, ErrNotConfigured)
}

func (u unconfigured) ListProjects(context.Context, ListOptions) ([]types.Project, error) {
	return nil, u.err()
}

func (u unconfigured) CreateProject(context.Context, types.ProjectDraft) (*types.Project, error) {
	return nil, u.err()
}

func (u unconfigured) UpdateProject(context.Context, string, types.ProjectPatch) (*types.Project, error) {
	return nil, u.err()
}

func (u unconfigured) GetProject(context.Context, string) (*types.Project, error) {
	return nil, u.err()
}

func (u unconfigured) ListTasks(context.Context, ListOptions) ([]types.Task, error) {
	return nil, u.err()
}

func (u unconfigured) CreateTask(context.Context, types.TaskDraft) (*types.Task, error) {
	return nil, u.err()
}

func (u unconfigured) UpdateTask(context.Context, string, types.TaskPatch) (*types.Task, error) {
	return nil, u.err()
}

func (u unconfigured) GetTask(context.Context, string) (*types.Task, error) {
	return nil, u.err()
}

func (u unconfigured) ListExpenses(context.Context, ListOptions) ([]types.Expense, error) {
	return nil, u.err()
}

func (u unconfigured) CreateExpense(context.Context, types.ExpenseDraft) (*types.Expense, error) {
	return nil, u.err()
}

func (u unconfigured) UpdateExpense(context.Context, string, types.ExpensePatch) (*types.Expense, error) {
	return nil, u.err()
}

func (u unconfigured) GetExpense(context.Context, string) (*types.Expense, error) {
	return nil, u.err()
}

func (u unconfigured) ListDocuments(context.Context, ListOptions) ([]types.Document, error) {
	return nil, u.err()
}

func (u unconfigured) CreateDocument(context.Context, types.DocumentDraft) (*types.Document, error) {
	return nil, u.err()
}

func (u unconfigured) UpdateDocument(context.Context, string, types.DocumentPatch) (*types.Document, error) {
	return nil, u.err()
}

func (u unconfigured) GetDocument(context.Context, string) (*types.Document, error) {
	return nil, u.err()
}

func (u unconfigured) ListPhotos(context.Context, ListOptions) ([]types.Photo, error) {
	return nil, u.err()
}

func (u unconfigured) CreatePhoto(context.Context, types.PhotoDraft) (*types.Photo, error) {
	return nil, u.err()
}

func (u unconfigured) UpdatePhoto(context.Context, string, types.PhotoPatch) (*types.Photo, error) {
	return nil, u.err()
}

func (u unconfigured) GetPhoto(context.Context, string) (*types.Photo, error) {
	return nil, u.err()
}

func (u unconfigured) Search(context.Context, types.Entity, string) ([]SearchResult, error) {
	return nil, u.err()
}
