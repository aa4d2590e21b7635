package documents_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/andreslomelig/NovaFolio/internal/bootstrap"
	"github.com/andreslomelig/NovaFolio/internal/extract"
	"github.com/andreslomelig/NovaFolio/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.Build(config.Config{
		Port:         "0",
		DatabaseURL:  "",
		StorageDir:   t.TempDir(),
		IndexWorkers: 1,
		Env:          "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func doJSON(t *testing.T, app *bootstrap.App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createCase(t *testing.T, app *bootstrap.App) string {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/v1/clients", map[string]any{"name": "Acme Corp"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: status %d body %s", w.Code, w.Body.String())
	}
	var client struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &client)

	w = doJSON(t, app, http.MethodPost, "/v1/cases", map[string]any{
		"client_id": client.ID,
		"title":     "Contract dispute",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create case: status %d body %s", w.Code, w.Body.String())
	}
	var cs struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &cs)
	return cs.ID
}

// buildDocx assembles a minimal valid DOCX archive with the given
// paragraphs in word/document.xml.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&doc, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	doc.WriteString(`</w:body></w:document>`)
	if _, err := f.Write([]byte(doc.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func uploadFile(t *testing.T, app *bootstrap.App, caseID, fileName, mime string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if caseID != "" {
		if err := mw.WriteField("case_id", caseID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	hdr.Set("Content-Type", mime)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func pollSearch(t *testing.T, app *bootstrap.App, q string) []map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w := doJSON(t, app, http.MethodGet, "/v1/search?q="+q, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("search: status %d body %s", w.Code, w.Body.String())
		}
		var resp struct {
			Items []map[string]any `json:"items"`
		}
		decodeBody(t, w, &resp)
		if len(resp.Items) > 0 {
			return resp.Items
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

func TestUploadIndexesAndSearches(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "The quick brown fox signed the settlement agreement.")
	w := uploadFile(t, app, caseID, "settlement.docx", extract.MimeDOCX, docx)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	decodeBody(t, w, &created)
	if created.ID == "" || !strings.HasPrefix(created.URL, "/files/") {
		t.Fatalf("unexpected upload response: %+v", created)
	}

	hits := pollSearch(t, app, "settlement")
	if len(hits) == 0 {
		t.Fatal("document was never indexed")
	}
	hit := hits[0]
	if hit["doc_id"] != created.ID {
		t.Errorf("doc_id = %v, want %v", hit["doc_id"], created.ID)
	}
	if hit["page"] != float64(1) {
		t.Errorf("page = %v, want 1", hit["page"])
	}
	if hit["case_id"] != caseID {
		t.Errorf("case_id = %v, want %v", hit["case_id"], caseID)
	}
	if snippet, _ := hit["snippet"].(string); !strings.Contains(strings.ToLower(snippet), "settlement") {
		t.Errorf("snippet %q does not contain the query", snippet)
	}
}

func TestUploadRejectsUnsupportedMime(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	w := uploadFile(t, app, caseID, "notes.txt", "text/plain", []byte("hello"))
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415; body %s", w.Code, w.Body.String())
	}

	// Rejected before any byte is written: no row, no file.
	list := doJSON(t, app, http.MethodGet, "/v1/documents?case_id="+caseID, nil)
	var resp struct {
		Items []any `json:"items"`
	}
	decodeBody(t, list, &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("rejected upload left %d document(s) behind", len(resp.Items))
	}
	entries, err := os.ReadDir(app.Blob.Root())
	if err != nil {
		t.Fatalf("read storage root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload wrote %d file(s)", len(entries))
	}
}

func TestUploadUnknownCaseReturns404(t *testing.T) {
	app := newTestApp(t)

	docx := buildDocx(t, "text")
	w := uploadFile(t, app, "2e9b7c3e-1a68-4e8a-9d2f-5f25c8f1a001", "doc.docx", extract.MimeDOCX, docx)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}

func TestRenameKeepsFileAndIndex(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "indexed body about maritime law")
	w := uploadFile(t, app, caseID, "old-name.docx", extract.MimeDOCX, docx)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d", w.Code)
	}
	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	decodeBody(t, w, &created)

	if hits := pollSearch(t, app, "maritime"); len(hits) == 0 {
		t.Fatal("document was never indexed")
	}

	rename := doJSON(t, app, http.MethodPatch, "/v1/documents/"+created.ID, map[string]any{"name": "new-name.docx"})
	if rename.Code != http.StatusNoContent {
		t.Fatalf("rename: status %d body %s", rename.Code, rename.Body.String())
	}

	get := doJSON(t, app, http.MethodGet, "/v1/documents/"+created.ID, nil)
	var doc struct {
		Name       string `json:"name"`
		StorageURL string `json:"storage_url"`
	}
	decodeBody(t, get, &doc)
	if doc.Name != "new-name.docx" {
		t.Errorf("name = %q, want new-name.docx", doc.Name)
	}
	if doc.StorageURL != created.URL {
		t.Errorf("rename changed the storage locator: %q -> %q", created.URL, doc.StorageURL)
	}

	// Index rows survive the rename.
	hits := pollSearch(t, app, "maritime")
	if len(hits) == 0 {
		t.Fatal("rename dropped the index rows")
	}
	if hits[0]["doc_name"] != "new-name.docx" {
		t.Errorf("doc_name = %v, want new-name.docx", hits[0]["doc_name"])
	}
}

func TestDeleteRemovesRecordAndIndex(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "ephemeral zanzibar content")
	w := uploadFile(t, app, caseID, "doc.docx", extract.MimeDOCX, docx)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)
	if hits := pollSearch(t, app, "zanzibar"); len(hits) == 0 {
		t.Fatal("document was never indexed")
	}

	del := doJSON(t, app, http.MethodDelete, "/v1/documents/"+created.ID, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d body %s", del.Code, del.Body.String())
	}

	get := doJSON(t, app, http.MethodGet, "/v1/documents/"+created.ID, nil)
	if get.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", get.Code)
	}

	search := doJSON(t, app, http.MethodGet, "/v1/search?q=zanzibar", nil)
	var resp struct {
		Items []any `json:"items"`
	}
	decodeBody(t, search, &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("delete left %d index row(s) behind", len(resp.Items))
	}
}

func TestReindexReturnsAccepted(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "reindexable content")
	w := uploadFile(t, app, caseID, "doc.docx", extract.MimeDOCX, docx)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	re := doJSON(t, app, http.MethodPost, "/v1/documents/"+created.ID+"/reindex", nil)
	if re.Code != http.StatusAccepted {
		t.Fatalf("reindex: status %d, want 202", re.Code)
	}
	var status struct {
		Status string `json:"status"`
	}
	decodeBody(t, re, &status)
	if status.Status != "queued" {
		t.Errorf("status = %q, want queued", status.Status)
	}

	missing := doJSON(t, app, http.MethodPost, "/v1/documents/2e9b7c3e-1a68-4e8a-9d2f-5f25c8f1a001/reindex", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("reindex missing: status %d, want 404", missing.Code)
	}
}

func TestHTMLPreviewIsDocxOnly(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "First paragraph.", "Second paragraph.")
	w := uploadFile(t, app, caseID, "brief.docx", extract.MimeDOCX, docx)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	preview := doJSON(t, app, http.MethodGet, "/v1/documents/"+created.ID+"/html", nil)
	if preview.Code != http.StatusOK {
		t.Fatalf("preview: status %d body %s", preview.Code, preview.Body.String())
	}
	if ct := preview.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(preview.Body.String(), "First paragraph.") {
		t.Errorf("preview body missing paragraph text: %s", preview.Body.String())
	}

	// The preview gate is on the stored MIME, so a PDF document is
	// rejected even though the upload itself succeeded.
	pdfUpload := uploadFile(t, app, caseID, "scan.pdf", "application/pdf", []byte("%PDF-1.4 not really"))
	if pdfUpload.Code != http.StatusCreated {
		t.Fatalf("pdf upload: status %d body %s", pdfUpload.Code, pdfUpload.Body.String())
	}
	var pdfDoc struct {
		ID string `json:"id"`
	}
	decodeBody(t, pdfUpload, &pdfDoc)

	rejected := doJSON(t, app, http.MethodGet, "/v1/documents/"+pdfDoc.ID+"/html", nil)
	if rejected.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("pdf preview: status %d, want 415", rejected.Code)
	}

	missing := doJSON(t, app, http.MethodGet, "/v1/documents/2e9b7c3e-1a68-4e8a-9d2f-5f25c8f1a001/html", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("preview missing: status %d, want 404", missing.Code)
	}
}

func TestServedFileMatchesUpload(t *testing.T) {
	app := newTestApp(t)
	caseID := createCase(t, app)

	docx := buildDocx(t, "byte identical payload")
	w := uploadFile(t, app, caseID, "payload.docx", extract.MimeDOCX, docx)
	var created struct {
		URL string `json:"url"`
	}
	decodeBody(t, w, &created)

	req := httptest.NewRequest(http.MethodGet, created.URL, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("serve file: status %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), docx) {
		t.Fatal("served bytes differ from the uploaded payload")
	}
}
