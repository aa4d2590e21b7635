package clients

import "time"

// Client is the top-level container: a client owns cases, cases own
// documents.
type Client struct {
	ID        string
	TenantID  string
	Name      string
	Tags      []string
	CreatedAt time.Time
}
