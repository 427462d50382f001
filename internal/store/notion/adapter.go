package notion

import (
	"context"

	"github.com/oakbuilt/renoplan/internal/schema"
	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

// Compile-time interface check
var _ store.Store = (*Adapter)(nil)

// Databases resolves the Notion database backing each entity. A single
// shared database id is the fallback when no per-entity id is set.
type Databases struct {
	Default  string
	ByEntity map[types.Entity]string
}

// For returns the database id backing an entity.
func (d Databases) For(e types.Entity) string {
	if id, ok := d.ByEntity[e]; ok && id != "" {
		return id
	}
	return d.Default
}

// Adapter implements store.Store against Notion databases.
type Adapter struct {
	client    *Client
	databases Databases
}

// New creates an adapter for the given credential and databases.
func New(apiKey string, databases Databases) *Adapter {
	return &Adapter{client: NewClient(apiKey), databases: databases}
}

// NewWithClient creates an adapter around an existing client.
// Used by tests to point at a fake server.
func NewWithClient(c *Client, databases Databases) *Adapter {
	return &Adapter{client: c, databases: databases}
}

// listQuery builds the structured query for a list call: archived
// exclusion when the entity has a status property, plus relationship
// scoping from the options, plus the entity's default sort.
func listQuery(t schema.Table, opts store.ListOptions) queryRequest {
	var conditions []map[string]any
	if t.HasStatus && !opts.IncludeArchived {
		conditions = append(conditions, selectDoesNotEqual("Status", schema.DisplayName("archived")))
	}
	if t.Entity == types.EntityProject && opts.OwnerID != "" {
		conditions = append(conditions, relationContains("Owner", opts.OwnerID))
	}
	if t.Entity != types.EntityProject && opts.ProjectID != "" {
		conditions = append(conditions, relationContains("Project", opts.ProjectID))
	}
	if (t.Entity == types.EntityPhoto || t.Entity == types.EntityExpense) && opts.TaskID != "" {
		conditions = append(conditions, relationContains("Task", opts.TaskID))
	}
	return queryRequest{
		Filter: allOf(conditions...),
		Sorts:  sortBy(t.SortColumn, t.SortAsc),
	}
}

func (a *Adapter) listPages(ctx context.Context, entity types.Entity, opts store.ListOptions) ([]page, error) {
	t := schema.For(entity)
	return a.client.queryDatabase(ctx, a.databases.For(entity), listQuery(t, opts))
}

// Projects

func decodeProject(pg *page) types.Project {
	status := types.ProjectStatus(schema.SlugFor(pg.selectValue("Status")))
	if !status.Valid() {
		status = types.ProjectPlanning
	}
	return types.Project{
		ID:            pg.ID,
		Name:          pg.plainText("Name"),
		Address:       pg.plainText("Address"),
		Status:        status,
		TotalBudget:   pg.number("Total Budget"),
		StartDate:     pg.dateValue("Start Date"),
		TargetEndDate: pg.datePtr("Target End Date"),
		OwnerID:       pg.firstRelation("Owner"),
		CreatedAt:     pg.CreatedTime,
		UpdatedAt:     pg.LastEditedTime,
	}
}

func (a *Adapter) ListProjects(ctx context.Context, opts store.ListOptions) ([]types.Project, error) {
	pages, err := a.listPages(ctx, types.EntityProject, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Project, len(pages))
	for i := range pages {
		out[i] = decodeProject(&pages[i])
	}
	return out, nil
}

func (a *Adapter) CreateProject(ctx context.Context, draft types.ProjectDraft) (*types.Project, error) {
	status := draft.Status
	if status == "" {
		status = types.ProjectPlanning
	}
	b := newProperties()
	b.title("Name", draft.Name)
	b.text("Address", draft.Address)
	b.number("Total Budget", draft.TotalBudget)
	b.date("Start Date", draft.StartDate)
	b.dateIfSet("Target End Date", draft.TargetEndDate)
	b.selectOption("Status", schema.DisplayName(string(status)))
	b.relation("Owner", draft.OwnerID)

	pg, err := a.client.createPage(ctx, a.databases.For(types.EntityProject), b.props)
	if err != nil {
		return nil, err
	}
	p := decodeProject(pg)
	return &p, nil
}

func (a *Adapter) UpdateProject(ctx context.Context, id string, patch types.ProjectPatch) (*types.Project, error) {
	b := newProperties()
	if patch.Name != nil {
		b.title("Name", *patch.Name)
	}
	if patch.Address != nil {
		b.text("Address", *patch.Address)
	}
	if patch.Status != nil {
		b.selectOption("Status", schema.DisplayName(string(*patch.Status)))
	}
	if patch.TotalBudget != nil {
		b.number("Total Budget", *patch.TotalBudget)
	}
	if patch.StartDate != nil {
		b.date("Start Date", *patch.StartDate)
	}
	if patch.TargetEndDate != nil {
		b.date("Target End Date", *patch.TargetEndDate)
	}
	if patch.OwnerID != nil {
		b.relation("Owner", *patch.OwnerID)
	}

	pg, err := a.client.updatePage(ctx, id, b.props)
	if err != nil {
		return nil, err
	}
	p := decodeProject(pg)
	return &p, nil
}

func (a *Adapter) GetProject(ctx context.Context, id string) (*types.Project, error) {
	pg, err := a.client.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	p := decodeProject(pg)
	return &p, nil
}

// Tasks

func decodeTask(pg *page) types.Task {
	status := types.TaskStatus(schema.SlugFor(pg.selectValue("Status")))
	if !status.Valid() {
		status = types.TaskTodo
	}
	return types.Task{
		ID:            pg.ID,
		ProjectID:     pg.firstRelation("Project"),
		Name:          pg.plainText("Name"),
		Description:   pg.plainText("Description"),
		Status:        status,
		AssignedTo:    pg.plainText("Assigned To"),
		DueDate:       pg.datePtr("Due Date"),
		Dependencies:  pg.relationIDs("Dependencies"),
		EstimatedCost: pg.number("Estimated Cost"),
		ActualCost:    pg.number("Actual Cost"),
		CreatedAt:     pg.CreatedTime,
		UpdatedAt:     pg.LastEditedTime,
	}
}

func (a *Adapter) ListTasks(ctx context.Context, opts store.ListOptions) ([]types.Task, error) {
	pages, err := a.listPages(ctx, types.EntityTask, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Task, len(pages))
	for i := range pages {
		out[i] = decodeTask(&pages[i])
	}
	store.SortTasksByDueDate(out)
	return out, nil
}

func (a *Adapter) CreateTask(ctx context.Context, draft types.TaskDraft) (*types.Task, error) {
	status := draft.Status
	if status == "" {
		status = types.TaskTodo
	}
	b := newProperties()
	b.title("Name", draft.Name)
	b.textIfSet("Description", draft.Description)
	b.relation("Project", draft.ProjectID)
	b.textIfSet("Assigned To", draft.AssignedTo)
	b.dateIfSet("Due Date", draft.DueDate)
	b.relations("Dependencies", draft.Dependencies)
	b.number("Estimated Cost", draft.EstimatedCost)
	b.number("Actual Cost", draft.ActualCost)
	b.selectOption("Status", schema.DisplayName(string(status)))

	pg, err := a.client.createPage(ctx, a.databases.For(types.EntityTask), b.props)
	if err != nil {
		return nil, err
	}
	t := decodeTask(pg)
	return &t, nil
}

func (a *Adapter) UpdateTask(ctx context.Context, id string, patch types.TaskPatch) (*types.Task, error) {
	b := newProperties()
	if patch.Name != nil {
		b.title("Name", *patch.Name)
	}
	if patch.Description != nil {
		b.text("Description", *patch.Description)
	}
	if patch.Status != nil {
		b.selectOption("Status", schema.DisplayName(string(*patch.Status)))
	}
	if patch.AssignedTo != nil {
		b.text("Assigned To", *patch.AssignedTo)
	}
	if patch.DueDate != nil {
		b.date("Due Date", *patch.DueDate)
	}
	if patch.Dependencies != nil {
		b.relations("Dependencies", *patch.Dependencies)
	}
	if patch.EstimatedCost != nil {
		b.number("Estimated Cost", *patch.EstimatedCost)
	}
	if patch.ActualCost != nil {
		b.number("Actual Cost", *patch.ActualCost)
	}

	pg, err := a.client.updatePage(ctx, id, b.props)
	if err != nil {
		return nil, err
	}
	t := decodeTask(pg)
	return &t, nil
}

func (a *Adapter) GetTask(ctx context.Context, id string) (*types.Task, error) {
	pg, err := a.client.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	t := decodeTask(pg)
	return &t, nil
}

// Expenses

func decodeExpense(pg *page) types.Expense {
	category := types.ExpenseCategory(schema.SlugFor(pg.selectValue("Category")))
	if !category.Valid() {
		category = types.CategoryOther
	}
	method := types.PaymentMethod(schema.SlugFor(pg.selectValue("Payment Method")))
	if !method.Valid() {
		method = types.PaymentCash
	}
	return types.Expense{
		ID:            pg.ID,
		ProjectID:     pg.firstRelation("Project"),
		TaskID:        pg.firstRelation("Task"),
		Category:      category,
		Amount:        pg.number("Amount"),
		Date:          pg.dateValue("Date"),
		Vendor:        pg.plainText("Vendor"),
		PaymentMethod: method,
		Notes:         pg.plainText("Notes"),
		ReceiptURL:    pg.urlValue("Receipt URL"),
		CreatedAt:     pg.CreatedTime,
		UpdatedAt:     pg.LastEditedTime,
	}
}

func (a *Adapter) ListExpenses(ctx context.Context, opts store.ListOptions) ([]types.Expense, error) {
	pages, err := a.listPages(ctx, types.EntityExpense, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Expense, len(pages))
	for i := range pages {
		out[i] = decodeExpense(&pages[i])
	}
	return out, nil
}

func (a *Adapter) CreateExpense(ctx context.Context, draft types.ExpenseDraft) (*types.Expense, error) {
	b := newProperties()
	b.number("Amount", draft.Amount)
	b.selectOption("Category", schema.DisplayName(string(draft.Category)))
	b.date("Date", draft.Date)
	b.text("Vendor", draft.Vendor)
	b.selectOption("Payment Method", schema.DisplayName(string(draft.PaymentMethod)))
	b.textIfSet("Notes", draft.Notes)
	b.url("Receipt URL", draft.ReceiptURL)
	b.relation("Project", draft.ProjectID)
	b.relation("Task", draft.TaskID)

	pg, err := a.client.createPage(ctx, a.databases.For(types.EntityExpense), b.props)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(pg)
	return &e, nil
}

func (a *Adapter) UpdateExpense(ctx context.Context, id string, patch types.ExpensePatch) (*types.Expense, error) {
	b := newProperties()
	if patch.Category != nil {
		b.selectOption("Category", schema.DisplayName(string(*patch.Category)))
	}
	if patch.Amount != nil {
		b.number("Amount", *patch.Amount)
	}
	if patch.Date != nil {
		b.date("Date", *patch.Date)
	}
	if patch.Vendor != nil {
		b.text("Vendor", *patch.Vendor)
	}
	if patch.PaymentMethod != nil {
		b.selectOption("Payment Method", schema.DisplayName(string(*patch.PaymentMethod)))
	}
	if patch.Notes != nil {
		b.text("Notes", *patch.Notes)
	}
	if patch.ReceiptURL != nil {
		b.url("Receipt URL", *patch.ReceiptURL)
	}
	if patch.TaskID != nil {
		b.relation("Task", *patch.TaskID)
	}

	pg, err := a.client.updatePage(ctx, id, b.props)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(pg)
	return &e, nil
}

func (a *Adapter) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	pg, err := a.client.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	e := decodeExpense(pg)
	return &e, nil
}

// Documents

func decodeDocument(pg *page) types.Document {
	docType := types.DocumentType(schema.SlugFor(pg.selectValue("Type")))
	if !docType.Valid() {
		docType = types.DocumentOther
	}
	return types.Document{
		ID:           pg.ID,
		ProjectID:    pg.firstRelation("Project"),
		Name:         pg.plainText("Name"),
		Type:         docType,
		FileURL:      pg.urlValue("File URL"),
		UploadedDate: pg.dateValue("Uploaded Date"),
		Tags:         pg.multiSelect("Tags"),
		CreatedAt:    pg.CreatedTime,
	}
}

func (a *Adapter) ListDocuments(ctx context.Context, opts store.ListOptions) ([]types.Document, error) {
	pages, err := a.listPages(ctx, types.EntityDocument, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Document, len(pages))
	for i := range pages {
		out[i] = decodeDocument(&pages[i])
	}
	return out, nil
}

func (a *Adapter) CreateDocument(ctx context.Context, draft types.DocumentDraft) (*types.Document, error) {
	b := newProperties()
	b.title("Name", draft.Name)
	b.selectOption("Type", schema.DisplayName(string(draft.Type)))
	b.url("File URL", draft.FileURL)
	b.date("Uploaded Date", draft.UploadedDate)
	b.multiSelect("Tags", draft.Tags)
	b.relation("Project", draft.ProjectID)

	pg, err := a.client.createPage(ctx, a.databases.For(types.EntityDocument), b.props)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(pg)
	return &d, nil
}

func (a *Adapter) UpdateDocument(ctx context.Context, id string, patch types.DocumentPatch) (*types.Document, error) {
	b := newProperties()
	if patch.Name != nil {
		b.title("Name", *patch.Name)
	}
	if patch.Type != nil {
		b.selectOption("Type", schema.DisplayName(string(*patch.Type)))
	}
	if patch.FileURL != nil {
		b.url("File URL", *patch.FileURL)
	}
	if patch.UploadedDate != nil {
		b.date("Uploaded Date", *patch.UploadedDate)
	}
	if patch.Tags != nil {
		b.multiSelect("Tags", *patch.Tags)
	}

	pg, err := a.client.updatePage(ctx, id, b.props)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(pg)
	return &d, nil
}

func (a *Adapter) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	pg, err := a.client.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	d := decodeDocument(pg)
	return &d, nil
}

// Photos

func decodePhoto(pg *page) types.Photo {
	return types.Photo{
		ID:        pg.ID,
		ProjectID: pg.firstRelation("Project"),
		TaskID:    pg.firstRelation("Task"),
		FileURL:   pg.urlValue("File URL"),
		Caption:   pg.plainText("Caption"),
		TakenDate: pg.dateValue("Taken Date"),
		Tags:      pg.multiSelect("Tags"),
		Location:  pg.plainText("Location"),
		CreatedAt: pg.CreatedTime,
	}
}

func (a *Adapter) ListPhotos(ctx context.Context, opts store.ListOptions) ([]types.Photo, error) {
	pages, err := a.listPages(ctx, types.EntityPhoto, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Photo, len(pages))
	for i := range pages {
		out[i] = decodePhoto(&pages[i])
	}
	return out, nil
}

func (a *Adapter) CreatePhoto(ctx context.Context, draft types.PhotoDraft) (*types.Photo, error) {
	b := newProperties()
	b.url("File URL", draft.FileURL)
	b.textIfSet("Caption", draft.Caption)
	b.date("Taken Date", draft.TakenDate)
	b.multiSelect("Tags", draft.Tags)
	b.textIfSet("Location", draft.Location)
	b.relation("Project", draft.ProjectID)
	b.relation("Task", draft.TaskID)

	pg, err := a.client.createPage(ctx, a.databases.For(types.EntityPhoto), b.props)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(pg)
	return &p, nil
}

func (a *Adapter) UpdatePhoto(ctx context.Context, id string, patch types.PhotoPatch) (*types.Photo, error) {
	b := newProperties()
	if patch.Caption != nil {
		b.text("Caption", *patch.Caption)
	}
	if patch.FileURL != nil {
		b.url("File URL", *patch.FileURL)
	}
	if patch.TakenDate != nil {
		b.date("Taken Date", *patch.TakenDate)
	}
	if patch.Tags != nil {
		b.multiSelect("Tags", *patch.Tags)
	}
	if patch.Location != nil {
		b.text("Location", *patch.Location)
	}
	if patch.TaskID != nil {
		b.relation("Task", *patch.TaskID)
	}

	pg, err := a.client.updatePage(ctx, id, b.props)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(pg)
	return &p, nil
}

func (a *Adapter) GetPhoto(ctx context.Context, id string) (*types.Photo, error) {
	pg, err := a.client.getPage(ctx, id)
	if err != nil {
		return nil, err
	}
	p := decodePhoto(pg)
	return &p, nil
}

// Search matches pages whose search property contains the term. The
// condition operator follows the property kind: title columns use a
// title filter, everything else rich_text.
func (a *Adapter) Search(ctx context.Context, entity types.Entity, term string) ([]store.SearchResult, error) {
	t := schema.For(entity)

	condition := richTextContains(t.SearchColumn, term)
	for _, f := range t.Fields {
		if f.Column == t.SearchColumn && f.Kind == schema.KindTitle {
			condition = titleContains(t.SearchColumn, term)
			break
		}
	}

	pages, err := a.client.queryDatabase(ctx, a.databases.For(entity), queryRequest{Filter: condition})
	if err != nil {
		return nil, err
	}
	out := make([]store.SearchResult, len(pages))
	for i := range pages {
		out[i] = store.SearchResult{
			ID:        pages[i].ID,
			Entity:    entity,
			Name:      pages[i].plainText(t.SearchColumn),
			CreatedAt: pages[i].CreatedTime,
		}
	}
	return out, nil
}
