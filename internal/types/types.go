package types

import "time"

// Entity identifies one of the five record kinds handled by the data layer.
type Entity string

const (
	EntityProject  Entity = "project"
	EntityTask     Entity = "task"
	EntityExpense  Entity = "expense"
	EntityDocument Entity = "document"
	EntityPhoto    Entity = "photo"
)

// Entities lists all record kinds in their fixed order.
var Entities = []Entity{EntityProject, EntityTask, EntityExpense, EntityDocument, EntityPhoto}

// ProjectStatus is the lifecycle state of a renovation project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
	// ProjectArchived marks a soft-deleted project. Default listings
	// exclude it; nothing is ever hard-deleted through this layer.
	ProjectArchived ProjectStatus = "archived"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold,
		ProjectCompleted, ProjectCancelled, ProjectArchived:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
	TaskArchived   TaskStatus = "archived"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted, TaskBlocked, TaskArchived:
		return true
	}
	return false
}

// ExpenseCategory classifies where renovation money went.
type ExpenseCategory string

const (
	CategoryMaterials ExpenseCategory = "materials"
	CategoryLabor     ExpenseCategory = "labor"
	CategoryPermits   ExpenseCategory = "permits"
	CategoryTools     ExpenseCategory = "tools"
	CategoryUtilities ExpenseCategory = "utilities"
	CategoryOther     ExpenseCategory = "other"
)

// Valid reports whether c is a known expense category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryMaterials, CategoryLabor, CategoryPermits,
		CategoryTools, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod records how an expense was paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
	PaymentOther        PaymentMethod = "other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentCheck, PaymentOther:
		return true
	}
	return false
}

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocumentReceipt  DocumentType = "receipt"
	DocumentInvoice  DocumentType = "invoice"
	DocumentPermit   DocumentType = "permit"
	DocumentContract DocumentType = "contract"
	DocumentPhoto    DocumentType = "photo"
	DocumentOther    DocumentType = "other"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentReceipt, DocumentInvoice, DocumentPermit,
		DocumentContract, DocumentPhoto, DocumentOther:
		return true
	}
	return false
}

// Project is a renovation project. The remote backend owns the record;
// this shape is the canonical view of it.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Status        ProjectStatus `json:"status"`
	TotalBudget   float64       `json:"totalBudget"`
	StartDate     time.Time     `json:"startDate"`
	TargetEndDate *time.Time    `json:"targetEndDate,omitempty"`
	OwnerID       string        `json:"ownerId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

// Task is a unit of work within a project. Dependencies reference other
// task ids in the same project; the backends do not enforce that, so the
// consumer validates it on write.
type Task struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"projectId"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Status        TaskStatus `json:"status"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Dependencies  []string   `json:"dependencies,omitempty"`
	EstimatedCost float64    `json:"estimatedCost"`
	ActualCost    float64    `json:"actualCost"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
}

// Expense is money spent against a project, optionally tied to a task.
type Expense struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"projectId"`
	TaskID        string          `json:"taskId,omitempty"`
	Category      ExpenseCategory `json:"category"`
	Amount        float64         `json:"amount"`
	Date          time.Time       `json:"date"`
	Vendor        string          `json:"vendor"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	ReceiptURL    string          `json:"receiptUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
}

// Document is a file attached to a project.
type Document struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"projectId"`
	Name         string       `json:"name"`
	Type         DocumentType `json:"type"`
	FileURL      string       `json:"fileUrl"`
	UploadedDate time.Time    `json:"uploadedDate"`
	Tags         []string     `json:"tags"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Photo is a progress photo attached to a project and optionally a task.
type Photo struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	TaskID    string    `json:"taskId,omitempty"`
	FileURL   string    `json:"fileUrl"`
	Caption   string    `json:"caption,omitempty"`
	TakenDate time.Time `json:"takenDate"`
	Tags      []string  `json:"tags"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectDraft carries the fields a caller supplies when creating a
// project. The backend assigns id and timestamps.
type ProjectDraft struct {
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	TotalBudget   float64       `json:"totalBudget"`
	StartDate     time.Time     `json:"startDate"`
	TargetEndDate *time.Time    `json:"targetEndDate,omitempty"`
	Status        ProjectStatus `json:"status,omitempty"` // defaults to planning
	OwnerID       string        `json:"ownerId,omitempty"`
}

// TaskDraft carries the fields for creating a task.
// Status defaults to todo and ActualCost to 0.
type TaskDraft struct {
	ProjectID     string     `json:"projectId"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Status        TaskStatus `json:"status,omitempty"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Dependencies  []string   `json:"dependencies,omitempty"`
	EstimatedCost float64    `json:"estimatedCost"`
	ActualCost    float64    `json:"actualCost"`
}

// ExpenseDraft carries the fields for creating an expense.
type ExpenseDraft struct {
	ProjectID     string          `json:"projectId"`
	TaskID        string          `json:"taskId,omitempty"`
	Category      ExpenseCategory `json:"category"`
	Amount        float64         `json:"amount"`
	Date          time.Time       `json:"date"`
	Vendor        string          `json:"vendor"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	ReceiptURL    string          `json:"receiptUrl,omitempty"`
}

// DocumentDraft carries the fields for creating a document.
type DocumentDraft struct {
	ProjectID    string       `json:"projectId"`
	Name         string       `json:"name"`
	Type         DocumentType `json:"type"`
	FileURL      string       `json:"fileUrl"`
	UploadedDate time.Time    `json:"uploadedDate"`
	Tags         []string     `json:"tags,omitempty"`
}

// PhotoDraft carries the fields for creating a photo.
type PhotoDraft struct {
	ProjectID string    `json:"projectId"`
	TaskID    string    `json:"taskId,omitempty"`
	FileURL   string    `json:"fileUrl"`
	Caption   string    `json:"caption,omitempty"`
	TakenDate time.Time `json:"takenDate"`
	Tags      []string  `json:"tags,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// ProjectPatch is a partial update. Nil fields are left untouched;
// only set fields are sent to the backend.
type ProjectPatch struct {
	Name          *string        `json:"name,omitempty"`
	Address       *string        `json:"address,omitempty"`
	Status        *ProjectStatus `json:"status,omitempty"`
	TotalBudget   *float64       `json:"totalBudget,omitempty"`
	StartDate     *time.Time     `json:"startDate,omitempty"`
	TargetEndDate *time.Time     `json:"targetEndDate,omitempty"`
	OwnerID       *string        `json:"ownerId,omitempty"`
}

// TaskPatch is a partial task update.
type TaskPatch struct {
	Name          *string     `json:"name,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Status        *TaskStatus `json:"status,omitempty"`
	AssignedTo    *string     `json:"assignedTo,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	Dependencies  *[]string   `json:"dependencies,omitempty"`
	EstimatedCost *float64    `json:"estimatedCost,omitempty"`
	ActualCost    *float64    `json:"actualCost,omitempty"`
}

// ExpensePatch is a partial expense update.
type ExpensePatch struct {
	Category      *ExpenseCategory `json:"category,omitempty"`
	Amount        *float64         `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Vendor        *string          `json:"vendor,omitempty"`
	PaymentMethod *PaymentMethod   `json:"paymentMethod,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	ReceiptURL    *string          `json:"receiptUrl,omitempty"`
	TaskID        *string          `json:"taskId,omitempty"`
}

// DocumentPatch is a partial document update.
type DocumentPatch struct {
	Name         *string       `json:"name,omitempty"`
	Type         *DocumentType `json:"type,omitempty"`
	FileURL      *string       `json:"fileUrl,omitempty"`
	UploadedDate *time.Time    `json:"uploadedDate,omitempty"`
	Tags         *[]string     `json:"tags,omitempty"`
}

// PhotoPatch is a partial photo update.
type PhotoPatch struct {
	Caption   *string    `json:"caption,omitempty"`
	FileURL   *string    `json:"fileUrl,omitempty"`
	TakenDate *time.Time `json:"takenDate,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	Location  *string    `json:"location,omitempty"`
	TaskID    *string    `json:"taskId,omitempty"`
}
