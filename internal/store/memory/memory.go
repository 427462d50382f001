// Package memory is an in-process store.Store used for local
// development and handler tests. It applies the same defaulting,
// archived-filtering and ordering policies as the remote adapters but
// persists nothing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

// Compile-time interface check
var _ store.Store = (*Store)(nil)

// Store holds all records in memory behind one mutex.
type Store struct {
	mu        sync.RWMutex
	projects  map[string]types.Project
	tasks     map[string]types.Task
	expenses  map[string]types.Expense
	documents map[string]types.Document
	photos    map[string]types.Photo
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		projects:  map[string]types.Project{},
		tasks:     map[string]types.Task{},
		expenses:  map[string]types.Expense{},
		documents: map[string]types.Document{},
		photos:    map[string]types.Photo{},
	}
}

func newID() string {
	return ulid.Make().String()
}

// Projects

func (s *Store) ListProjects(_ context.Context, opts store.ListOptions) ([]types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Project
	for _, p := range s.projects {
		if !opts.IncludeArchived && p.Status == types.ProjectArchived {
			continue
		}
		if opts.OwnerID != "" && p.OwnerID != opts.OwnerID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (s *Store) CreateProject(_ context.Context, draft types.ProjectDraft) (*types.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := draft.Status
	if status == "" {
		status = types.ProjectPlanning
	}
	p := types.Project{
		ID:            newID(),
		Name:          draft.Name,
		Address:       draft.Address,
		Status:        status,
		TotalBudget:   draft.TotalBudget,
		StartDate:     draft.StartDate,
		TargetEndDate: draft.TargetEndDate,
		OwnerID:       draft.OwnerID,
		CreatedAt:     time.Now().UTC(),
	}
	s.projects[p.ID] = p
	return &p, nil
}

func (s *Store) UpdateProject(_ context.Context, id string, patch types.ProjectPatch) (*types.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.TotalBudget != nil {
		p.TotalBudget = *patch.TotalBudget
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.TargetEndDate != nil {
		p.TargetEndDate = patch.TargetEndDate
	}
	if patch.OwnerID != nil {
		p.OwnerID = *patch.OwnerID
	}
	p.UpdatedAt = time.Now().UTC()
	s.projects[id] = p
	return &p, nil
}

func (s *Store) GetProject(_ context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

// Tasks

func (s *Store) ListTasks(_ context.Context, opts store.ListOptions) ([]types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Task
	for _, t := range s.tasks {
		if !opts.IncludeArchived && t.Status == types.TaskArchived {
			continue
		}
		if opts.ProjectID != "" && t.ProjectID != opts.ProjectID {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	store.SortTasksByDueDate(out)
	return out, nil
}

func (s *Store) CreateTask(_ context.Context, draft types.TaskDraft) (*types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := draft.Status
	if status == "" {
		status = types.TaskTodo
	}
	t := types.Task{
		ID:            newID(),
		ProjectID:     draft.ProjectID,
		Name:          draft.Name,
		Description:   draft.Description,
		Status:        status,
		AssignedTo:    draft.AssignedTo,
		DueDate:       draft.DueDate,
		Dependencies:  draft.Dependencies,
		EstimatedCost: draft.EstimatedCost,
		ActualCost:    draft.ActualCost,
		CreatedAt:     time.Now().UTC(),
	}
	s.tasks[t.ID] = t
	return &t, nil
}

func (s *Store) UpdateTask(_ context.Context, id string, patch types.TaskPatch) (*types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = *patch.AssignedTo
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Dependencies != nil {
		t.Dependencies = *patch.Dependencies
	}
	if patch.EstimatedCost != nil {
		t.EstimatedCost = *patch.EstimatedCost
	}
	if patch.ActualCost != nil {
		t.ActualCost = *patch.ActualCost
	}
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return &t, nil
}

func (s *Store) GetTask(_ context.Context, id string) (*types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

// Expenses

func (s *Store) ListExpenses(_ context.Context, opts store.ListOptions) ([]types.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Expense
	for _, e := range s.expenses {
		if opts.ProjectID != "" && e.ProjectID != opts.ProjectID {
			continue
		}
		if opts.TaskID != "" && e.TaskID != opts.TaskID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, draft types.ExpenseDraft) (*types.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := types.Expense{
		ID:            newID(),
		ProjectID:     draft.ProjectID,
		TaskID:        draft.TaskID,
		Category:      draft.Category,
		Amount:        draft.Amount,
		Date:          draft.Date,
		Vendor:        draft.Vendor,
		PaymentMethod: draft.PaymentMethod,
		Notes:         draft.Notes,
		ReceiptURL:    draft.ReceiptURL,
		CreatedAt:     time.Now().UTC(),
	}
	s.expenses[e.ID] = e
	return &e, nil
}

func (s *Store) UpdateExpense(_ context.Context, id string, patch types.ExpensePatch) (*types.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Vendor != nil {
		e.Vendor = *patch.Vendor
	}
	if patch.PaymentMethod != nil {
		e.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.ReceiptURL != nil {
		e.ReceiptURL = *patch.ReceiptURL
	}
	if patch.TaskID != nil {
		e.TaskID = *patch.TaskID
	}
	e.UpdatedAt = time.Now().UTC()
	s.expenses[id] = e
	return &e, nil
}

func (s *Store) GetExpense(_ context.Context, id string) (*types.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

// Documents

func (s *Store) ListDocuments(_ context.Context, opts store.ListOptions) ([]types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Document
	for _, d := range s.documents {
		if opts.ProjectID != "" && d.ProjectID != opts.ProjectID {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedDate.After(out[j].UploadedDate)
	})
	return out, nil
}

func (s *Store) CreateDocument(_ context.Context, draft types.DocumentDraft) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	d := types.Document{
		ID:           newID(),
		ProjectID:    draft.ProjectID,
		Name:         draft.Name,
		Type:         draft.Type,
		FileURL:      draft.FileURL,
		UploadedDate: draft.UploadedDate,
		Tags:         tags,
		CreatedAt:    time.Now().UTC(),
	}
	s.documents[d.ID] = d
	return &d, nil
}

func (s *Store) UpdateDocument(_ context.Context, id string, patch types.DocumentPatch) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Type != nil {
		d.Type = *patch.Type
	}
	if patch.FileURL != nil {
		d.FileURL = *patch.FileURL
	}
	if patch.UploadedDate != nil {
		d.UploadedDate = *patch.UploadedDate
	}
	if patch.Tags != nil {
		d.Tags = *patch.Tags
	}
	s.documents[id] = d
	return &d, nil
}

func (s *Store) GetDocument(_ context.Context, id string) (*types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

// Photos

func (s *Store) ListPhotos(_ context.Context, opts store.ListOptions) ([]types.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Photo
	for _, p := range s.photos {
		if opts.ProjectID != "" && p.ProjectID != opts.ProjectID {
			continue
		}
		if opts.TaskID != "" && p.TaskID != opts.TaskID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TakenDate.After(out[j].TakenDate)
	})
	return out, nil
}

func (s *Store) CreatePhoto(_ context.Context, draft types.PhotoDraft) (*types.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	p := types.Photo{
		ID:        newID(),
		ProjectID: draft.ProjectID,
		TaskID:    draft.TaskID,
		FileURL:   draft.FileURL,
		Caption:   draft.Caption,
		TakenDate: draft.TakenDate,
		Tags:      tags,
		Location:  draft.Location,
		CreatedAt: time.Now().UTC(),
	}
	s.photos[p.ID] = p
	return &p, nil
}

func (s *Store) UpdatePhoto(_ context.Context, id string, patch types.PhotoPatch) (*types.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.photos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Caption != nil {
		p.Caption = *patch.Caption
	}
	if patch.FileURL != nil {
		p.FileURL = *patch.FileURL
	}
	if patch.TakenDate != nil {
		p.TakenDate = *patch.TakenDate
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.TaskID != nil {
		p.TaskID = *patch.TaskID
	}
	s.photos[id] = p
	return &p, nil
}

func (s *Store) GetPhoto(_ context.Context, id string) (*types.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.photos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

// Search performs a case-insensitive name-substring match.
func (s *Store) Search(_ context.Context, entity types.Entity, term string) ([]store.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	match := func(name string) bool {
		return strings.Contains(strings.ToLower(name), term)
	}

	var out []store.SearchResult
	switch entity {
	case types.EntityProject:
		for _, p := range s.projects {
			if match(p.Name) {
				out = append(out, store.SearchResult{ID: p.ID, Entity: entity, Name: p.Name, CreatedAt: p.CreatedAt})
			}
		}
	case types.EntityTask:
		for _, t := range s.tasks {
			if match(t.Name) {
				out = append(out, store.SearchResult{ID: t.ID, Entity: entity, Name: t.Name, CreatedAt: t.CreatedAt})
			}
		}
	case types.EntityExpense:
		for _, e := range s.expenses {
			if match(e.Vendor) {
				out = append(out, store.SearchResult{ID: e.ID, Entity: entity, Name: e.Vendor, CreatedAt: e.CreatedAt})
			}
		}
	case types.EntityDocument:
		for _, d := range s.documents {
			if match(d.Name) {
				out = append(out, store.SearchResult{ID: d.ID, Entity: entity, Name: d.Name, CreatedAt: d.CreatedAt})
			}
		}
	case types.EntityPhoto:
		for _, p := range s.photos {
			if match(p.Caption) {
				out = append(out, store.SearchResult{ID: p.ID, Entity: entity, Name: p.Caption, CreatedAt: p.CreatedAt})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
