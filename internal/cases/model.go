package cases

import "time"

// Case statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Case groups the documents of one matter under a client.
type Case struct {
	ID        string
	TenantID  string
	ClientID  string
	Title     string
	Status    string
	CreatedAt time.Time
}

// ValidStatus reports whether s is a known case status.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed
}
