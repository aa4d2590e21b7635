package clients

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type noopQueue struct{}

func (noopQueue) EnqueueRemoveFiles(...string) {}

func newClientRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo(nil), noopQueue{}, uuid.NewString())
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/v1"))
	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateClientValidation(t *testing.T) {
	r := newClientRouter(t)

	w := doReq(t, r, http.MethodPost, "/v1/clients", map[string]any{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status %d, want 400", w.Code)
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	w = doReq(t, r, http.MethodPost, "/v1/clients", map[string]any{"name": string(long)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("long name: status %d, want 400", w.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	r := newClientRouter(t)

	w := doReq(t, r, http.MethodPost, "/v1/clients", map[string]any{
		"name": "Globex",
		"tags": []string{"priority"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	get := doReq(t, r, http.MethodGet, "/v1/clients/"+created.ID, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("get: status %d", get.Code)
	}
	var client ClientResponse
	if err := json.Unmarshal(get.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if client.Name != "Globex" || len(client.Tags) != 1 || client.Tags[0] != "priority" {
		t.Fatalf("unexpected client: %+v", client)
	}

	patch := doReq(t, r, http.MethodPatch, "/v1/clients/"+created.ID, map[string]any{
		"tags": []string{"priority", "litigation"},
	})
	if patch.Code != http.StatusNoContent {
		t.Fatalf("patch: status %d body %s", patch.Code, patch.Body.String())
	}

	get = doReq(t, r, http.MethodGet, "/v1/clients/"+created.ID, nil)
	if err := json.Unmarshal(get.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if client.Name != "Globex" {
		t.Fatalf("partial update touched name: %q", client.Name)
	}
	if len(client.Tags) != 2 {
		t.Fatalf("tags = %v, want two entries", client.Tags)
	}

	del := doReq(t, r, http.MethodDelete, "/v1/clients/"+created.ID, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", del.Code)
	}
	get = doReq(t, r, http.MethodGet, "/v1/clients/"+created.ID, nil)
	if get.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", get.Code)
	}
}

func TestUpdateClientRequiresFields(t *testing.T) {
	r := newClientRouter(t)

	w := doReq(t, r, http.MethodPost, "/v1/clients", map[string]any{"name": "Initech"})
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	patch := doReq(t, r, http.MethodPatch, "/v1/clients/"+created.ID, map[string]any{})
	if patch.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", patch.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(patch.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "no_fields" {
		t.Fatalf("error = %q, want no_fields", resp.Error)
	}
}

func TestListClientsFiltersByName(t *testing.T) {
	r := newClientRouter(t)

	for _, name := range []string{"Acme Corp", "Acme Holdings", "Globex"} {
		w := doReq(t, r, http.MethodPost, "/v1/clients", map[string]any{"name": name})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %q: status %d", name, w.Code)
		}
	}

	w := doReq(t, r, http.MethodGet, "/v1/clients?q=acme", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var resp struct {
		Items []ClientResponse `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	for _, item := range resp.Items {
		if item.Tags == nil {
			t.Fatalf("client %q serialized nil tags", item.Name)
		}
	}
}
