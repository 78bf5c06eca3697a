package models

// User represents a registered MeetMinder account.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"` // Never expose in JSON
	FullName     *string `json:"fullName"`
	Plan         string  `json:"plan"` // "free", "pro"
}
