package db

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soaringjerry/Quiz/internal/api"
)

// The HTTP layer must behave the same on the SQLite backend.
func TestRouterOnSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(context.Background(), openTestDB(t), api.DefaultQuestions())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	srv := httptest.NewServer(api.NewRouter(store, nil, api.Options{}).Handler())
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, strings.TrimSpace(string(b))
	}

	resp, err := srv.Client().Post(srv.URL+"/submit", "application/json",
		strings.NewReader(`{"userId":"u1","answers":[{"questionId":1,"optionIndex":0},{"questionId":2,"optionIndex":1}]}`))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}

	if status, body := get("/score?userId=u1"); status != http.StatusOK || body != `{"userId":"u1","score":1,"total":2}` {
		t.Fatalf("score: %d %s", status, body)
	}
	if status, body := get("/questions"); status != http.StatusOK || strings.Contains(body, "answer_index") {
		t.Fatalf("questions: %d %s", status, body)
	}
}
