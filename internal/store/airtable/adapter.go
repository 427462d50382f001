package airtable

import (
	"context"

	"github.com/oakbuilt/renoplan/internal/schema"
	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

// Compile-time interface check
var _ store.Store = (*Adapter)(nil)

// Adapter implements store.Store against an Airtable base.
type Adapter struct {
	client *Client
}

// New creates an adapter for the given credential and base.
func New(apiKey, baseID string) *Adapter {
	return &Adapter{client: NewClient(apiKey, baseID)}
}

// NewWithClient creates an adapter around an existing client.
// Used by tests to point at a fake server.
func NewWithClient(c *Client) *Adapter {
	return &Adapter{client: c}
}

// listFilter builds the boolean formula for a list call: archived
// exclusion when the table has a status column, plus relationship
// scoping from the options.
func listFilter(t schema.Table, opts store.ListOptions) string {
	var exprs []Expr
	if t.HasStatus && !opts.IncludeArchived {
		exprs = append(exprs, Not(Eq("Status", schema.DisplayName("archived"))))
	}
	if t.Entity == types.EntityProject && opts.OwnerID != "" {
		exprs = append(exprs, Eq("Owner", opts.OwnerID))
	}
	if t.Entity != types.EntityProject && opts.ProjectID != "" {
		exprs = append(exprs, Eq("Project", opts.ProjectID))
	}
	if (t.Entity == types.EntityPhoto || t.Entity == types.EntityExpense) && opts.TaskID != "" {
		exprs = append(exprs, Eq("Task", opts.TaskID))
	}
	if len(exprs) == 0 {
		return ""
	}
	return Render(And(exprs...))
}

func (a *Adapter) listRecords(ctx context.Context, entity types.Entity, opts store.ListOptions) ([]record, error) {
	t := schema.For(entity)
	return a.client.list(ctx, t.Name, listFilter(t, opts), t.SortColumn, t.SortAsc)
}

// Projects

func decodeProject(rec *record) types.Project {
	f := fieldReader{rec.Fields}
	status := types.ProjectStatus(schema.SlugFor(f.str("Status")))
	if !status.Valid() {
		status = types.ProjectPlanning
	}
	return types.Project{
		ID:            rec.ID,
		Name:          f.str("Name"),
		Address:       f.str("Address"),
		Status:        status,
		TotalBudget:   f.num("Total Budget"),
		StartDate:     f.date("Start Date"),
		TargetEndDate: f.datePtr("Target End Date"),
		OwnerID:       f.firstID("Owner"),
		CreatedAt:     rec.CreatedTime,
	}
}

func (a *Adapter) ListProjects(ctx context.Context, opts store.ListOptions) ([]types.Project, error) {
	recs, err := a.listRecords(ctx, types.EntityProject, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Project, len(recs))
	for i := range recs {
		out[i] = decodeProject(&recs[i])
	}
	return out, nil
}

func (a *Adapter) CreateProject(ctx context.Context, draft types.ProjectDraft) (*types.Project, error) {
	status := draft.Status
	if status == "" {
		status = types.ProjectPlanning
	}
	w := newFieldWriter()
	w.set("Name", draft.Name)
	w.set("Address", draft.Address)
	w.set("Total Budget", draft.TotalBudget)
	w.setDate("Start Date", draft.StartDate)
	w.setDatePtr("Target End Date", draft.TargetEndDate)
	w.set("Status", schema.DisplayName(string(status)))
	w.setRelation("Owner", draft.OwnerID)

	rec, err := a.client.create(ctx, schema.For(types.EntityProject).Name, w.fields)
	if err != nil {
		return nil, err
	}
	p := decodeProject(rec)
	return &p, nil
}

func (a *Adapter) UpdateProject(ctx context.Context, id string, patch types.ProjectPatch) (*types.Project, error) {
	w := newFieldWriter()
	if patch.Name != nil {
		w.set("Name", *patch.Name)
	}
	if patch.Address != nil {
		w.set("Address", *patch.Address)
	}
	if patch.Status != nil {
		w.set("Status", schema.DisplayName(string(*patch.Status)))
	}
	if patch.TotalBudget != nil {
		w.set("Total Budget", *patch.TotalBudget)
	}
	if patch.StartDate != nil {
		w.set("Start Date", dateString(*patch.StartDate))
	}
	if patch.TargetEndDate != nil {
		w.set("Target End Date", dateString(*patch.TargetEndDate))
	}
	if patch.OwnerID != nil {
		w.setRelation("Owner", *patch.OwnerID)
	}

	rec, err := a.client.update(ctx, schema.For(types.EntityProject).Name, id, w.fields)
	if err != nil {
		return nil, err
	}
	p := decodeProject(rec)
	return &p, nil
}

func (a *Adapter) GetProject(ctx context.Context, id string) (*types.Project, error) {
	rec, err := a.client.find(ctx, schema.For(types.EntityProject).Name, id)
	if err != nil {
		return nil, err
	}
	p := decodeProject(rec)
	return &p, nil
}

// Tasks

func decodeTask(rec *record) types.Task {
	f := fieldReader{rec.Fields}
	status := types.TaskStatus(schema.SlugFor(f.str("Status")))
	if !status.Valid() {
		status = types.TaskTodo
	}
	return types.Task{
		ID:            rec.ID,
		ProjectID:     f.firstID("Project"),
		Name:          f.str("Name"),
		Description:   f.str("Description"),
		Status:        status,
		AssignedTo:    f.str("Assigned To"),
		DueDate:       f.datePtr("Due Date"),
		Dependencies:  f.ids("Dependencies"),
		EstimatedCost: f.num("Estimated Cost"),
		ActualCost:    f.num("Actual Cost"),
		CreatedAt:     rec.CreatedTime,
	}
}

func (a *Adapter) ListTasks(ctx context.Context, opts store.ListOptions) ([]types.Task, error) {
	recs, err := a.listRecords(ctx, types.EntityTask, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Task, len(recs))
	for i := range recs {
		out[i] = decodeTask(&recs[i])
	}
	store.SortTasksByDueDate(out)
	return out, nil
}

func (a *Adapter) CreateTask(ctx context.Context, draft types.TaskDraft) (*types.Task, error) {
	status := draft.Status
	if status == "" {
		status = types.TaskTodo
	}
	w := newFieldWriter()
	w.set("Name", draft.Name)
	w.setString("Description", draft.Description)
	w.setRelation("Project", draft.ProjectID)
	w.setString("Assigned To", draft.AssignedTo)
	w.setDatePtr("Due Date", draft.DueDate)
	w.setRelations("Dependencies", draft.Dependencies)
	w.set("Estimated Cost", draft.EstimatedCost)
	w.set("Actual Cost", draft.ActualCost)
	w.set("Status", schema.DisplayName(string(status)))

	rec, err := a.client.create(ctx, schema.For(types.EntityTask).Name, w.fields)
	if err != nil {
		return nil, err
	}
	t := decodeTask(rec)
	return &t, nil
}

func (a *Adapter) UpdateTask(ctx context.Context, id string, patch types.TaskPatch) (*types.Task, error) {
	w := newFieldWriter()
	if patch.Name != nil {
		w.set("Name", *patch.Name)
	}
	if patch.Description != nil {
		w.set("Description", *patch.Description)
	}
	if patch.Status != nil {
		w.set("Status", schema.DisplayName(string(*patch.Status)))
	}
	if patch.AssignedTo != nil {
		w.set("Assigned To", *patch.AssignedTo)
	}
	if patch.DueDate != nil {
		w.set("Due Date", dateString(*patch.DueDate))
	}
	if patch.Dependencies != nil {
		w.set("Dependencies", *patch.Dependencies)
	}
	if patch.EstimatedCost != nil {
		w.set("Estimated Cost", *patch.EstimatedCost)
	}
	if patch.ActualCost != nil {
		w.set("Actual Cost", *patch.ActualCost)
	}

	rec, err := a.client.update(ctx, schema.For(types.EntityTask).Name, id, w.fields)
	if err != nil {
		return nil, err
	}
	t := decodeTask(rec)
	return &t, nil
}

func (a *Adapter) GetTask(ctx context.Context, id string) (*types.Task, error) {
	rec, err := a.client.find(ctx, schema.For(types.EntityTask).Name, id)
	if err != nil {
		return nil, err
	}
	t := decodeTask(rec)
	return &t, nil
}

// Expenses

func decodeExpense(rec *record) types.Expense {
	f := fieldReader{rec.Fields}
	category := types.ExpenseCategory(schema.SlugFor(f.str("Category")))
	if !category.Valid() {
		category = types.CategoryOther
	}
	method := types.PaymentMethod(schema.SlugFor(f.str("Payment Method")))
	if !method.Valid() {
		method = types.PaymentCash
	}
	return types.Expense{
		ID:            rec.ID,
		ProjectID:     f.firstID("Project"),
		TaskID:        f.firstID("Task"),
		Category:      category,
		Amount:        f.num("Amount"),
		Date:          f.date("Date"),
		Vendor:        f.str("Vendor"),
		PaymentMethod: method,
		Notes:         f.str("Notes"),
		ReceiptURL:    f.str("Receipt URL"),
		CreatedAt:     rec.CreatedTime,
	}
}

func (a *Adapter) ListExpenses(ctx context.Context, opts store.ListOptions) ([]types.Expense, error) {
	recs, err := a.listRecords(ctx, types.EntityExpense, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Expense, len(recs))
	for i := range recs {
		out[i] = decodeExpense(&recs[i])
	}
	return out, nil
}

func (a *Adapter) CreateExpense(ctx context.Context, draft types.ExpenseDraft) (*types.Expense, error) {
	w := newFieldWriter()
	w.set("Amount", draft.Amount)
	w.set("Category", schema.DisplayName(string(draft.Category)))
	w.setDate("Date", draft.Date)
	w.set("Vendor", draft.Vendor)
	w.set("Payment Method", schema.DisplayName(string(draft.PaymentMethod)))
	w.setString("Notes", draft.Notes)
	w.setString("Receipt URL", draft.ReceiptURL)
	w.setRelation("Project", draft.ProjectID)
	w.setRelation("Task", draft.TaskID)

	rec, err := a.client.create(ctx, schema.For(types.EntityExpense).Name, w.fields)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(rec)
	return &e, nil
}

func (a *Adapter) UpdateExpense(ctx context.Context, id string, patch types.ExpensePatch) (*types.Expense, error) {
	w := newFieldWriter()
	if patch.Category != nil {
		w.set("Category", schema.DisplayName(string(*patch.Category)))
	}
	if patch.Amount != nil {
		w.set("Amount", *patch.Amount)
	}
	if patch.Date != nil {
		w.set("Date", dateString(*patch.Date))
	}
	if patch.Vendor != nil {
		w.set("Vendor", *patch.Vendor)
	}
	if patch.PaymentMethod != nil {
		w.set("Payment Method", schema.DisplayName(string(*patch.PaymentMethod)))
	}
	if patch.Notes != nil {
		w.set("Notes", *patch.Notes)
	}
	if patch.ReceiptURL != nil {
		w.set("Receipt URL", *patch.ReceiptURL)
	}
	if patch.TaskID != nil {
		w.setRelation("Task", *patch.TaskID)
	}

	rec, err := a.client.update(ctx, schema.For(types.EntityExpense).Name, id, w.fields)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(rec)
	return &e, nil
}

func (a *Adapter) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	rec, err := a.client.find(ctx, schema.For(types.EntityExpense).Name, id)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(rec)
	return &e, nil
}

// Documents

func decodeDocument(rec *record) types.Document {
	f := fieldReader{rec.Fields}
	docType := types.DocumentType(schema.SlugFor(f.str("Type")))
	if !docType.Valid() {
		docType = types.DocumentOther
	}
	return types.Document{
		ID:           rec.ID,
		ProjectID:    f.firstID("Project"),
		Name:         f.str("Name"),
		Type:         docType,
		FileURL:      f.str("File URL"),
		UploadedDate: f.date("Uploaded Date"),
		Tags:         f.strs("Tags"),
		CreatedAt:    rec.CreatedTime,
	}
}

func (a *Adapter) ListDocuments(ctx context.Context, opts store.ListOptions) ([]types.Document, error) {
	recs, err := a.listRecords(ctx, types.EntityDocument, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Document, len(recs))
	for i := range recs {
		out[i] = decodeDocument(&recs[i])
	}
	return out, nil
}

func (a *Adapter) CreateDocument(ctx context.Context, draft types.DocumentDraft) (*types.Document, error) {
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	w := newFieldWriter()
	w.set("Name", draft.Name)
	w.set("Type", schema.DisplayName(string(draft.Type)))
	w.set("File URL", draft.FileURL)
	w.setDate("Uploaded Date", draft.UploadedDate)
	w.set("Tags", tags)
	w.setRelation("Project", draft.ProjectID)

	rec, err := a.client.create(ctx, schema.For(types.EntityDocument).Name, w.fields)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(rec)
	return &d, nil
}

func (a *Adapter) UpdateDocument(ctx context.Context, id string, patch types.DocumentPatch) (*types.Document, error) {
	w := newFieldWriter()
	if patch.Name != nil {
		w.set("Name", *patch.Name)
	}
	if patch.Type != nil {
		w.set("Type", schema.DisplayName(string(*patch.Type)))
	}
	if patch.FileURL != nil {
		w.set("File URL", *patch.FileURL)
	}
	if patch.UploadedDate != nil {
		w.set("Uploaded Date", dateString(*patch.UploadedDate))
	}
	if patch.Tags != nil {
		w.set("Tags", *patch.Tags)
	}

	rec, err := a.client.update(ctx, schema.For(types.EntityDocument).Name, id, w.fields)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(rec)
	return &d, nil
}

func (a *Adapter) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	rec, err := a.client.find(ctx, schema.For(types.EntityDocument).Name, id)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(rec)
	return &d, nil
}

// Photos

func decodePhoto(rec *record) types.Photo {
	f := fieldReader{rec.Fields}
	return types.Photo{
		ID:        rec.ID,
		ProjectID: f.firstID("Project"),
		TaskID:    f.firstID("Task"),
		FileURL:   f.str("File URL"),
		Caption:   f.str("Caption"),
		TakenDate: f.date("Taken Date"),
		Tags:      f.strs("Tags"),
		Location:  f.str("Location"),
		CreatedAt: rec.CreatedTime,
	}
}

func (a *Adapter) ListPhotos(ctx context.Context, opts store.ListOptions) ([]types.Photo, error) {
	recs, err := a.listRecords(ctx, types.EntityPhoto, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Photo, len(recs))
	for i := range recs {
		out[i] = decodePhoto(&recs[i])
	}
	return out, nil
}

func (a *Adapter) CreatePhoto(ctx context.Context, draft types.PhotoDraft) (*types.Photo, error) {
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	w := newFieldWriter()
	w.set("File URL", draft.FileURL)
	w.setString("Caption", draft.Caption)
	w.setDate("Taken Date", draft.TakenDate)
	w.set("Tags", tags)
	w.setString("Location", draft.Location)
	w.setRelation("Project", draft.ProjectID)
	w.setRelation("Task", draft.TaskID)

	rec, err := a.client.create(ctx, schema.For(types.EntityPhoto).Name, w.fields)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(rec)
	return &p, nil
}

func (a *Adapter) UpdatePhoto(ctx context.Context, id string, patch types.PhotoPatch) (*types.Photo, error) {
	w := newFieldWriter()
	if patch.Caption != nil {
		w.set("Caption", *patch.Caption)
	}
	if patch.FileURL != nil {
		w.set("File URL", *patch.FileURL)
	}
	if patch.TakenDate != nil {
		w.set("Taken Date", dateString(*patch.TakenDate))
	}
	if patch.Tags != nil {
		w.set("Tags", *patch.Tags)
	}
	if patch.Location != nil {
		w.set("Location", *patch.Location)
	}
	if patch.TaskID != nil {
		w.setRelation("Task", *patch.TaskID)
	}

	rec, err := a.client.update(ctx, schema.For(types.EntityPhoto).Name, id, w.fields)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(rec)
	return &p, nil
}

func (a *Adapter) GetPhoto(ctx context.Context, id string) (*types.Photo, error) {
	rec, err := a.client.find(ctx, schema.For(types.EntityPhoto).Name, id)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(rec)
	return &p, nil
}

// Search matches records whose search column contains the term.
func (a *Adapter) Search(ctx context.Context, entity types.Entity, term string) ([]store.SearchResult, error) {
	t := schema.For(entity)
	formula := Render(Search(term, t.SearchColumn))
	recs, err := a.client.list(ctx, t.Name, formula, "", false)
	if err != nil {
		return nil, err
	}
	out := make([]store.SearchResult, len(recs))
	for i := range recs {
		f := fieldReader{recs[i].Fields}
		out[i] = store.SearchResult{
			ID:        recs[i].ID,
			Entity:    entity,
			Name:      f.str(t.SearchColumn),
			CreatedAt: recs[i].CreatedTime,
		}
	}
	return out, nil
}
