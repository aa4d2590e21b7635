package search

// Hit is one page-level search result.
type Hit struct {
	DocID   string `json:"doc_id"`
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
	DocName string `json:"doc_name"`
	CaseID  string `json:"case_id"`
}
