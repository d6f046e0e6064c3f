package models

// Category is the database representation of a transaction category.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	Icon       string `db:"icon"`
	Color      string `db:"color"`
	AuditFields
}
