package models

// EmailSource is a linked email account meetings are detected from.
type EmailSource struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Provider string `json:"provider"` // gmail, outlook, etc.
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// ChatSource is a linked chat platform meetings are detected from.
type ChatSource struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Provider string `json:"provider"` // slack, telegram, etc.
	Username string `json:"username"`
	Active   bool   `json:"active"`
}
