package drive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// plainSource ignores tokens and returns the default client, so tests hit
// the httptest server without the oauth2 transport.
type plainSource struct{}

func (plainSource) Client(context.Context, domain.OAuthTokens) *http.Client {
	return http.DefaultClient
}

func newTestClient(server *httptest.Server) *Client {
	c := NewClient(plainSource{}, zerolog.Nop())
	c.baseURL = server.URL
	c.uploadURL = server.URL + "/upload"
	return c
}

func testUser() *domain.User {
	return &domain.User{ID: "user_1", AccessToken: "at", RefreshToken: "rt"}
}

func TestClient_FindFolder(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(fileListResponse{Files: []fileResource{
			{ID: "folder_1", Name: "Letters"},
			{ID: "folder_2", Name: "Letters"},
		}})
	}))
	defer server.Close()

	id, err := newTestClient(server).FindFolder(context.Background(), testUser(), "Letters")
	if err != nil {
		t.Fatalf("find folder failed: %v", err)
	}
	if id != "folder_1" {
		t.Fatalf("first match must win, got %q", id)
	}
	if !strings.Contains(gotQuery, "name='Letters'") ||
		!strings.Contains(gotQuery, "mimeType='application/vnd.google-apps.folder'") ||
		!strings.Contains(gotQuery, "trashed=false") {
		t.Fatalf("unexpected search query: %s", gotQuery)
	}
}

func TestClient_FindFolder_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(fileListResponse{})
	}))
	defer server.Close()

	id, err := newTestClient(server).FindFolder(context.Background(), testUser(), "Letters")
	if err != nil {
		t.Fatalf("find folder failed: %v", err)
	}
	if id != "" {
		t.Fatalf("missing folder must yield empty id, got %q", id)
	}
}

func TestClient_FindFolder_EscapesName(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(fileListResponse{})
	}))
	defer server.Close()

	if _, err := newTestClient(server).FindFolder(context.Background(), testUser(), "Bob's"); err != nil {
		t.Fatalf("find folder failed: %v", err)
	}
	if !strings.Contains(gotQuery, `name='Bob\'s'`) {
		t.Fatalf("quote not escaped in query: %s", gotQuery)
	}
}

func TestClient_CreateFolder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/files" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var meta fileMetadata
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			t.Fatalf("invalid metadata body: %v", err)
		}
		if meta.Name != "Letters" || meta.MimeType != mimeFolder {
			t.Fatalf("unexpected metadata: %+v", meta)
		}
		_ = json.NewEncoder(w).Encode(fileResource{ID: "folder_1"})
	}))
	defer server.Close()

	id, err := newTestClient(server).CreateFolder(context.Background(), testUser(), "Letters")
	if err != nil {
		t.Fatalf("create folder failed: %v", err)
	}
	if id != "folder_1" {
		t.Fatalf("unexpected folder id %q", id)
	}
}

// parseUpload splits a multipart/related upload into its metadata and
// content parts.
func parseUpload(t *testing.T, r *http.Request) (fileMetadata, string) {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("invalid content type: %v", err)
	}
	if mediaType != "multipart/related" {
		t.Fatalf("expected multipart/related, got %s", mediaType)
	}

	reader := multipart.NewReader(r.Body, params["boundary"])

	metaPart, err := reader.NextPart()
	if err != nil {
		t.Fatalf("missing metadata part: %v", err)
	}
	var meta fileMetadata
	if err := json.NewDecoder(metaPart).Decode(&meta); err != nil {
		t.Fatalf("invalid metadata part: %v", err)
	}

	mediaPart, err := reader.NextPart()
	if err != nil {
		t.Fatalf("missing media part: %v", err)
	}
	if ct := mediaPart.Header.Get("Content-Type"); ct != mimeContent {
		t.Fatalf("unexpected media content type %s", ct)
	}
	content, err := io.ReadAll(mediaPart)
	if err != nil {
		t.Fatalf("reading media part: %v", err)
	}

	return meta, string(content)
}

func TestClient_CreateFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload/files" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("uploadType") != "multipart" {
			t.Fatalf("missing uploadType=multipart")
		}

		meta, content := parseUpload(t, r)
		if meta.Name != "Dear Carol" || meta.MimeType != mimeDocument {
			t.Fatalf("unexpected metadata: %+v", meta)
		}
		if len(meta.Parents) != 1 || meta.Parents[0] != "folder_1" {
			t.Fatalf("create must set the parent folder: %+v", meta)
		}
		if content != "<p>hi</p>" {
			t.Fatalf("unexpected content %q", content)
		}

		_ = json.NewEncoder(w).Encode(fileResource{ID: "file_1"})
	}))
	defer server.Close()

	id, err := newTestClient(server).CreateFile(context.Background(), testUser(), "folder_1", "Dear Carol", "<p>hi</p>")
	if err != nil {
		t.Fatalf("create file failed: %v", err)
	}
	if id != "file_1" {
		t.Fatalf("unexpected file id %q", id)
	}
}

func TestClient_UpdateFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/upload/files/file_1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		meta, content := parseUpload(t, r)
		if len(meta.Parents) != 0 {
			t.Fatalf("update must not send parents: %+v", meta)
		}
		if meta.Name != "Renamed" || content != "<p>edited</p>" {
			t.Fatalf("unexpected upload: %+v %q", meta, content)
		}

		_ = json.NewEncoder(w).Encode(fileResource{ID: "file_1"})
	}))
	defer server.Close()

	if err := newTestClient(server).UpdateFile(context.Background(), testUser(), "file_1", "Renamed", "<p>edited</p>"); err != nil {
		t.Fatalf("update file failed: %v", err)
	}
}

func TestClient_ListFolderFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "'folder_1' in parents") {
			t.Fatalf("unexpected query: %s", q)
		}
		_ = json.NewEncoder(w).Encode(fileListResponse{Files: []fileResource{
			{ID: "file_1", Name: "Dear Carol", CreatedTime: "2024-03-01T10:00:00Z", ModifiedTime: "2024-03-02T10:00:00Z"},
			{ID: "file_2", Name: "Untitled Letter", CreatedTime: "not-a-timestamp"},
		}})
	}))
	defer server.Close()

	files, err := newTestClient(server).ListFolderFiles(context.Background(), testUser(), "folder_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].CreatedAt.IsZero() || files[0].ModifiedAt.IsZero() {
		t.Fatalf("timestamps not parsed: %+v", files[0])
	}
	if !files[1].CreatedAt.IsZero() {
		t.Fatalf("malformed timestamp must become zero time")
	}
}

func TestClient_DeleteFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/files/file_1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := newTestClient(server).DeleteFile(context.Background(), testUser(), "file_1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestClient_RemoteErrorClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Credentials"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).FindFolder(context.Background(), testUser(), "Letters")
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}
