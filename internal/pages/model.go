package pages

// Page is one indexed page of a document. Page numbers are contiguous and
// 1-based, matching the extractor's output order.
type Page struct {
	DocID string
	Page  int
	Text  string
}
