package domain

// CategoryKind tells whether a category groups income or expense transactions.
type CategoryKind string

const (
	IncomeCategory  CategoryKind = "INCOME"
	ExpenseCategory CategoryKind = "EXPENSE"
)

// Category groups transactions for budgeting and reporting.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary key (UUID)
	UserID     string       `json:"userID"`     // FK -> users.user_id (Not Null)
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	Icon       string       `json:"icon"`  // Display metadata
	Color      string       `json:"color"` // Display metadata, hex string
	AuditFields
}
