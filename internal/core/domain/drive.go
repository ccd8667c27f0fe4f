package domain

import (
	"errors"
	"time"
)

var ErrRemoteUnavailable = errors.New("remote storage unavailable")
var ErrSyncInProgress = errors.New("sync already in progress")

// RemoteFile is a normalized view of a file stored in the user's Drive
// folder. Callers never see raw Drive API payloads.
type RemoteFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdTime"`
	ModifiedAt time.Time `json:"modifiedTime"`
}
