package ports

import "context"

// SyncLocker provides a per-letter advisory lock so two concurrent syncs of
// the same letter cannot both create a remote file.
type SyncLocker interface {
	// TryLock reports whether the lock for letterID was acquired.
	TryLock(ctx context.Context, letterID string) (bool, error)
	Unlock(ctx context.Context, letterID string) error
}
