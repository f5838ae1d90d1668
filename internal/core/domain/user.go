package domain

// UserProfile is the signed-in user's own record, editable through the
// profile page. Credentials and sessions are handled elsewhere.
type UserProfile struct {
	UserID string `json:"userID"` // Primary Key (e.g., UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"` // Nullable
	Role   string `json:"role"`  // Display only
	AuditFields
}
