package drive

import (
	"time"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

// Drive API mime types. Letters are stored as native Google Docs so they
// open in the Drive UI; uploaded content is the letter's HTML body.
const (
	mimeFolder   = "application/vnd.google-apps.folder"
	mimeDocument = "application/vnd.google-apps.document"
	mimeContent  = "text/html"
)

// fileResource mirrors the Drive v3 file JSON exactly. Unexported — callers
// see domain.RemoteFile via toRemoteFile normalization.
type fileResource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType,omitempty"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}

type fileListResponse struct {
	Files []fileResource `json:"files"`
}

// fileMetadata is the request body for file and folder creation/update.
// Parents may only be set on create; Drive rejects it on PATCH.
type fileMetadata struct {
	Name     string   `json:"name,omitempty"`
	MimeType string   `json:"mimeType,omitempty"`
	Parents  []string `json:"parents,omitempty"`
}

func (f fileResource) toRemoteFile() domain.RemoteFile {
	return domain.RemoteFile{
		ID:         f.ID,
		Name:       f.Name,
		CreatedAt:  parseTime(f.CreatedTime),
		ModifiedAt: parseTime(f.ModifiedTime),
	}
}

// parseTime converts a Drive RFC3339 timestamp; malformed values become the
// zero time rather than failing the whole listing.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
