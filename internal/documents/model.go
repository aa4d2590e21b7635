package documents

import "time"

// Document represents an uploaded file that belongs to a case. Name is the
// user-editable display name; StorageURL is the immutable public locator of
// the stored file. SHA256 is reserved and currently never set.
type Document struct {
	ID         string
	TenantID   string
	CaseID     string
	Name       string
	Mime       string
	StorageURL string
	SHA256     string
	Version    int
	CreatedAt  time.Time
}
