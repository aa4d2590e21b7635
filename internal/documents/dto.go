package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id"`
	Name       string    `json:"name"`
	Mime       string    `json:"mime"`
	StorageURL string    `json:"storage_url"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		CaseID:     doc.CaseID,
		Name:       doc.Name,
		Mime:       doc.Mime,
		StorageURL: doc.StorageURL,
		Version:    doc.Version,
		CreatedAt:  doc.CreatedAt,
	}
}
