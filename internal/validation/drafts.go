package validation

import "github.com/oakbuilt/renoplan/internal/types"

// ValidateProjectDraft checks a new project before it reaches a backend.
func ValidateProjectDraft(d types.ProjectDraft) []ValidationError {
	var c Collector
	c.Add(Required("name", d.Name))
	if d.Status != "" {
		c.Add(Enum("status", d.Status))
	}
	c.Add(NonNegative("totalBudget", d.TotalBudget))
	c.Add(DateSet("startDate", d.StartDate))
	return c.Errors()
}

// ValidateProjectPatch checks a project update.
func ValidateProjectPatch(p types.ProjectPatch) []ValidationError {
	var c Collector
	if p.Name != nil {
		c.Add(Required("name", *p.Name))
	}
	if p.Status != nil {
		c.Add(Enum("status", *p.Status))
	}
	if p.TotalBudget != nil {
		c.Add(NonNegative("totalBudget", *p.TotalBudget))
	}
	return c.Errors()
}

// ValidateTaskDraft checks a new task.
func ValidateTaskDraft(d types.TaskDraft) []ValidationError {
	var c Collector
	c.Add(Required("name", d.Name))
	c.Add(Required("projectId", d.ProjectID))
	if d.Status != "" {
		c.Add(Enum("status", d.Status))
	}
	c.Add(NonNegative("estimatedCost", d.EstimatedCost))
	c.Add(NonNegative("actualCost", d.ActualCost))
	c.Add(Dependencies("dependencies", "", d.Dependencies))
	return c.Errors()
}

// ValidateTaskPatch checks a task update against the task's own id.
func ValidateTaskPatch(id string, p types.TaskPatch) []ValidationError {
	var c Collector
	if p.Name != nil {
		c.Add(Required("name", *p.Name))
	}
	if p.Status != nil {
		c.Add(Enum("status", *p.Status))
	}
	if p.EstimatedCost != nil {
		c.Add(NonNegative("estimatedCost", *p.EstimatedCost))
	}
	if p.ActualCost != nil {
		c.Add(NonNegative("actualCost", *p.ActualCost))
	}
	if p.Dependencies != nil {
		c.Add(Dependencies("dependencies", id, *p.Dependencies))
	}
	return c.Errors()
}

// ValidateExpenseDraft checks a new expense.
func ValidateExpenseDraft(d types.ExpenseDraft) []ValidationError {
	var c Collector
	c.Add(Required("projectId", d.ProjectID))
	c.Add(Positive("amount", d.Amount))
	c.Add(DateSet("date", d.Date))
	if d.Category != "" {
		c.Add(Enum("category", d.Category))
	}
	if d.PaymentMethod != "" {
		c.Add(Enum("paymentMethod", d.PaymentMethod))
	}
	return c.Errors()
}

// ValidateExpensePatch checks an expense update.
func ValidateExpensePatch(p types.ExpensePatch) []ValidationError {
	var c Collector
	if p.Amount != nil {
		c.Add(Positive("amount", *p.Amount))
	}
	if p.Category != nil {
		c.Add(Enum("category", *p.Category))
	}
	if p.PaymentMethod != nil {
		c.Add(Enum("paymentMethod", *p.PaymentMethod))
	}
	return c.Errors()
}

// ValidateDocumentDraft checks a new document.
func ValidateDocumentDraft(d types.DocumentDraft) []ValidationError {
	var c Collector
	c.Add(Required("name", d.Name))
	c.Add(Required("projectId", d.ProjectID))
	if d.Type != "" {
		c.Add(Enum("type", d.Type))
	}
	return c.Errors()
}

// ValidatePhotoDraft checks a new photo.
func ValidatePhotoDraft(d types.PhotoDraft) []ValidationError {
	var c Collector
	c.Add(Required("projectId", d.ProjectID))
	c.Add(Required("fileUrl", d.FileURL))
	return c.Errors()
}
