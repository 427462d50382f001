// Package store defines the backend-neutral contract for the renovation
// data layer. The remote backend is the sole persistence authority;
// adapters translate between the canonical shapes in internal/types and
// each backend's wire schema, and hold no durable state of their own.
package store

import (
	"context"
	"time"

	"github.com/oakbuilt/renoplan/internal/types"
)

// ListOptions narrows list calls. The zero value lists everything
// except archived records.
type ListOptions struct {
	// OwnerID limits project listings to one owning user.
	OwnerID string
	// ProjectID limits tasks, expenses, documents and photos to one project.
	ProjectID string
	// TaskID limits photos and expenses to one task.
	TaskID string
	// IncludeArchived includes records whose status is archived.
	// Entities without a status field ignore it.
	IncludeArchived bool
}

// SearchResult is one hit from a name-substring search.
type SearchResult struct {
	ID        string       `json:"id"`
	Entity    types.Entity `json:"entity"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store is the capability interface every backend adapter implements.
// All calls are single-shot: no retries, no caching, errors surface to
// the caller immediately. "Deletion" is a status transition to archived
// performed through the Update methods.
type Store interface {
	ListProjects(ctx context.Context, opts ListOptions) ([]types.Project, error)
	CreateProject(ctx context.Context, draft types.ProjectDraft) (*types.Project, error)
	UpdateProject(ctx context.Context, id string, patch types.ProjectPatch) (*types.Project, error)
	GetProject(ctx context.Context, id string) (*types.Project, error)

	ListTasks(ctx context.Context, opts ListOptions) ([]types.Task, error)
	CreateTask(ctx context.Context, draft types.TaskDraft) (*types.Task, error)
	UpdateTask(ctx context.Context, id string, patch types.TaskPatch) (*types.Task, error)
	GetTask(ctx context.Context, id string) (*types.Task, error)

	ListExpenses(ctx context.Context, opts ListOptions) ([]types.Expense, error)
	CreateExpense(ctx context.Context, draft types.ExpenseDraft) (*types.Expense, error)
	UpdateExpense(ctx context.Context, id string, patch types.ExpensePatch) (*types.Expense, error)
	GetExpense(ctx context.Context, id string) (*types.Expense, error)

	ListDocuments(ctx context.Context, opts ListOptions) ([]types.Document, error)
	CreateDocument(ctx context.Context, draft types.DocumentDraft) (*types.Document, error)
	UpdateDocument(ctx context.Context, id string, patch types.DocumentPatch) (*types.Document, error)
	GetDocument(ctx context.Context, id string) (*types.Document, error)

	ListPhotos(ctx context.Context, opts ListOptions) ([]types.Photo, error)
	CreatePhoto(ctx context.Context, draft types.PhotoDraft) (*types.Photo, error)
	UpdatePhoto(ctx context.Context, id string, patch types.PhotoPatch) (*types.Photo, error)
	GetPhoto(ctx context.Context, id string) (*types.Photo, error)

	// Search performs a name-substring lookup within one entity kind.
	Search(ctx context.Context, entity types.Entity, term string) ([]SearchResult, error)
}
