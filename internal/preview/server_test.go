package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func previewFixture(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("index.html", "<html>home</html>")
	write("assets/styles.css", "body {}")
	write("generated/gallery.json", `{"projects":[]}`)
	write("projects/kitchen/index.html", "<html>kitchen</html>")

	return New(root, ":0")
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	req.URL = &url.URL{Path: path}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServeStatic(t *testing.T) {
	s := previewFixture(t)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		body        string
	}{
		{name: "root serves index", path: "/", status: http.StatusOK, contentType: "text/html", body: "<html>home</html>"},
		{name: "css content type", path: "/assets/styles.css", status: http.StatusOK, contentType: "text/css", body: "body {}"},
		{name: "manifest json", path: "/generated/gallery.json", status: http.StatusOK, contentType: "application/json", body: `{"projects":[]}`},
		{name: "project page dir", path: "/projects/kitchen/", status: http.StatusOK, contentType: "text/html", body: "<html>kitchen</html>"},
		{name: "missing file", path: "/nope.css", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("Status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("Body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestServeRejectsTraversal(t *testing.T) {
	s := previewFixture(t)

	rec := get(t, s, "/../secret.txt")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealthcheck(t *testing.T) {
	s := previewFixture(t)

	rec := get(t, s, "/healthcheck")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("Healthcheck = %d %q", rec.Code, rec.Body.String())
	}
}

func TestWatchTriggersRebuild(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "projects", "kitchen"), 0755); err != nil {
		t.Fatal(err)
	}

	rebuilt := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, func() error {
			select {
			case rebuilt <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher a moment to register, then touch a file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "projects", "kitchen", "project.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected rebuild after file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop on cancel")
	}
}
