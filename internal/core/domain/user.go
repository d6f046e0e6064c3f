package domain

// User is an authenticated owner of ledger data.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt hash; empty for OAuth-only users
	AuthProvider string `json:"authProvider"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Auth providers.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)
