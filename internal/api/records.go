package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
	"github.com/oakbuilt/renoplan/internal/validation"
)

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// listOptions reads the shared list query parameters. includeArchived
// accepts "true" or "1"; anything else keeps archived records hidden.
func listOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	include := q.Get("includeArchived")
	return store.ListOptions{
		OwnerID:         q.Get("owner"),
		ProjectID:       q.Get("project"),
		TaskID:          q.Get("task"),
		IncludeArchived: include == "true" || include == "1",
	}
}

// Projects

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context(), listOptions(r))
	if err != nil {
		slog.Error("list projects failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	if projects == nil {
		projects = []types.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var draft types.ProjectDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if errs := validation.ValidateProjectDraft(draft); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Project contains invalid fields", errs)
		return
	}

	project, err := h.store.CreateProject(r.Context(), draft)
	if err != nil {
		slog.Error("create project failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(r.Context(), pathParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch types.ProjectPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if errs := validation.ValidateProjectPatch(patch); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Project update contains invalid fields", errs)
		return
	}

	project, err := h.store.UpdateProject(r.Context(), pathParam(r, "id"), patch)
	if err != nil {
		slog.Error("update project failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// ArchiveProject handles DELETE /projects/{id}. Deletion is a status
// transition; the record stays in the backend.
func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	archived := types.ProjectArchived
	_, err := h.store.UpdateProject(r.Context(), pathParam(r, "id"), types.ProjectPatch{Status: &archived})
	if err != nil {
		slog.Error("archive project failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tasks

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), listOptions(r))
	if err != nil {
		slog.Error("list tasks failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var draft types.TaskDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if errs := validation.ValidateTaskDraft(draft); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Task contains invalid fields", errs)
		return
	}

	task, err := h.store.CreateTask(r.Context(), draft)
	if err != nil {
		slog.Error("create task failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.GetTask(r.Context(), pathParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	var patch types.TaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if errs := validation.ValidateTaskPatch(id, patch); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Task update contains invalid fields", errs)
		return
	}

	task, err := h.store.UpdateTask(r.Context(), id, patch)
	if err != nil {
		slog.Error("update task failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ArchiveTask handles DELETE /tasks/{id} as a status transition.
func (h *Handler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	archived := types.TaskArchived
	_, err := h.store.UpdateTask(r.Context(), pathParam(r, "id"), types.TaskPatch{Status: &archived})
	if err != nil {
		slog.Error("archive task failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Expenses

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses(r.Context(), listOptions(r))
	if err != nil {
		slog.Error("list expenses failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []types.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var draft types.ExpenseDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if errs := validation.ValidateExpenseDraft(draft); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Expense contains invalid fields", errs)
		return
	}

	expense, err := h.store.CreateExpense(r.Context(), draft)
	if err != nil {
		slog.Error("create expense failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.store.GetExpense(r.Context(), pathParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var patch types.ExpensePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if errs := validation.ValidateExpensePatch(patch); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Expense update contains invalid fields", errs)
		return
	}

	expense, err := h.store.UpdateExpense(r.Context(), pathParam(r, "id"), patch)
	if err != nil {
		slog.Error("update expense failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Documents

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.store.ListDocuments(r.Context(), listOptions(r))
	if err != nil {
		slog.Error("list documents failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	if documents == nil {
		documents = []types.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var draft types.DocumentDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if errs := validation.ValidateDocumentDraft(draft); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Document contains invalid fields", errs)
		return
	}

	document, err := h.store.CreateDocument(r.Context(), draft)
	if err != nil {
		slog.Error("create document failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, document)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.store.GetDocument(r.Context(), pathParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var patch types.DocumentPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	document, err := h.store.UpdateDocument(r.Context(), pathParam(r, "id"), patch)
	if err != nil {
		slog.Error("update document failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

// Photos

func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.store.ListPhotos(r.Context(), listOptions(r))
	if err != nil {
		slog.Error("list photos failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	if photos == nil {
		photos = []types.Photo{}
	}
	writeJSON(w, http.StatusOK, photos)
}

func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var draft types.PhotoDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	if errs := validation.ValidatePhotoDraft(draft); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Photo contains invalid fields", errs)
		return
	}

	photo, err := h.store.CreatePhoto(r.Context(), draft)
	if err != nil {
		slog.Error("create photo failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.store.GetPhoto(r.Context(), pathParam(r, "id"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var patch types.PhotoPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	photo, err := h.store.UpdatePhoto(r.Context(), pathParam(r, "id"), patch)
	if err != nil {
		slog.Error("update photo failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}
