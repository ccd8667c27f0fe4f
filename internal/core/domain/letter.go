package domain

import (
	"errors"
	"time"
)

// DefaultLetterTitle is applied when a letter is created without a title.
const DefaultLetterTitle = "Untitled Letter"

var ErrLetterNotFound = errors.New("letter not found")

// Letter is a user-authored document with an optional 1:1 binding to a
// remote Drive file. SavedToDrive is only ever true while DriveFileID is
// set; both are cleared together when the remote copy is deleted.
type Letter struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	SavedToDrive bool      `json:"savedToDrive"`
	DriveFileID  string    `json:"driveFileId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
