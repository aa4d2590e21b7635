package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type recordingEngine struct {
	q      string
	caseID string
	limit  int
}

func (e *recordingEngine) Search(_ context.Context, q, caseID string, limit int) ([]Hit, error) {
	e.q, e.caseID, e.limit = q, caseID, limit
	return nil, nil
}

func newSearchRouter(engine Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(engine).RegisterRoutes(r.Group("/v1"))
	return r
}

func TestSearchRequiresQuery(t *testing.T) {
	r := newSearchRouter(&recordingEngine{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Fatalf("error = %q, want validation_error", resp.Error)
	}
}

func TestSearchLimitDefaultsAndClamps(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default", "/v1/search?q=x", 30},
		{"explicit", "/v1/search?q=x&limit=5", 5},
		{"clamped high", "/v1/search?q=x&limit=500", 100},
		{"clamped low", "/v1/search?q=x&limit=0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &recordingEngine{}
			r := newSearchRouter(engine)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if engine.limit != tt.want {
				t.Fatalf("limit = %d, want %d", engine.limit, tt.want)
			}
		})
	}
}

func TestSearchEmptyResultIsEmptyArray(t *testing.T) {
	r := newSearchRouter(&recordingEngine{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/search?q=nothing", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Items []Hit `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Items == nil {
		t.Fatal("items must be an empty array, not null")
	}
}
