package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// FindFolder returns the id of the first non-trashed folder with the given
// name, or "" when none exists. Duplicate folders are possible in Drive;
// first match wins.
func (c *Client) FindFolder(ctx context.Context, user *domain.User, name string) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQueryValue(name), mimeFolder))
	q.Set("fields", "files(id, name)")

	var list fileListResponse
	if err := c.do(ctx, user, http.MethodGet, c.baseURL+"/files?"+q.Encode(), "", nil, &list); err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].ID, nil
}

// CreateFolder creates a folder at the Drive root and returns its id.
func (c *Client) CreateFolder(ctx context.Context, user *domain.User, name string) (string, error) {
	body, err := json.Marshal(fileMetadata{Name: name, MimeType: mimeFolder})
	if err != nil {
		return "", fmt.Errorf("drive: marshal folder metadata: %w", err)
	}

	var created fileResource
	u := c.baseURL + "/files?" + url.Values{"fields": {"id"}}.Encode()
	if err := c.do(ctx, user, http.MethodPost, u, "application/json", bytes.NewReader(body), &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CreateFile uploads a new document inside folderID via a multipart/related
// request (metadata part + media part) and returns the assigned file id.
func (c *Client) CreateFile(ctx context.Context, user *domain.User, folderID, name, content string) (string, error) {
	meta := fileMetadata{Name: name, MimeType: mimeDocument, Parents: []string{folderID}}
	body, contentType, err := multipartUpload(meta, content)
	if err != nil {
		return "", err
	}

	q := url.Values{"uploadType": {"multipart"}, "fields": {"id"}}
	var created fileResource
	u := c.uploadURL + "/files?" + q.Encode()
	if err := c.do(ctx, user, http.MethodPost, u, contentType, body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateFile replaces the metadata and content of an existing document.
// Parents are never sent on update; Drive rejects them on PATCH.
func (c *Client) UpdateFile(ctx context.Context, user *domain.User, fileID, name, content string) error {
	meta := fileMetadata{Name: name, MimeType: mimeDocument}
	body, contentType, err := multipartUpload(meta, content)
	if err != nil {
		return err
	}

	q := url.Values{"uploadType": {"multipart"}}
	u := c.uploadURL + "/files/" + url.PathEscape(fileID) + "?" + q.Encode()
	return c.do(ctx, user, http.MethodPatch, u, contentType, body, nil)
}

// ListFolderFiles lists the non-trashed documents inside folderID.
func (c *Client) ListFolderFiles(ctx context.Context, user *domain.User, folderID string) ([]domain.RemoteFile, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", escapeQueryValue(folderID), mimeDocument))
	q.Set("fields", "files(id, name, createdTime, modifiedTime)")

	var list fileListResponse
	if err := c.do(ctx, user, http.MethodGet, c.baseURL+"/files?"+q.Encode(), "", nil, &list); err != nil {
		return nil, err
	}

	files := make([]domain.RemoteFile, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, f.toRemoteFile())
	}
	return files, nil
}

// DeleteFile permanently removes a file. Drive returns 204 with no body.
func (c *Client) DeleteFile(ctx context.Context, user *domain.User, fileID string) error {
	return c.do(ctx, user, http.MethodDelete, c.baseURL+"/files/"+url.PathEscape(fileID), "", nil, nil)
}

// multipartUpload builds the multipart/related body Drive expects for media
// uploads: a JSON metadata part followed by the content part.
func multipartUpload(meta fileMetadata, content string) (*bytes.Buffer, string, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, "", fmt.Errorf("drive: marshal file metadata: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := w.CreatePart(metaHeader)
	if err != nil {
		return nil, "", fmt.Errorf("drive: build metadata part: %w", err)
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return nil, "", fmt.Errorf("drive: write metadata part: %w", err)
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", mimeContent)
	mediaPart, err := w.CreatePart(mediaHeader)
	if err != nil {
		return nil, "", fmt.Errorf("drive: build media part: %w", err)
	}
	if _, err := mediaPart.Write([]byte(content)); err != nil {
		return nil, "", fmt.Errorf("drive: write media part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("drive: finalize multipart body: %w", err)
	}

	contentType := strings.Replace(w.FormDataContentType(), "multipart/form-data", "multipart/related", 1)
	return &buf, contentType, nil
}
