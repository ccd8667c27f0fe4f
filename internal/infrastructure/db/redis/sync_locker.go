package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a crashed sync can keep a letter locked.
const lockTTL = 30 * time.Second

// SyncLocker provides a per-letter advisory lock backed by Redis SETNX.
// Two concurrent syncs of the same letter would otherwise both miss the
// stored drive file id and create duplicate remote files.
// Key format: synclock:<letter_id>
type SyncLocker struct {
	client *redis.Client
}

// NewSyncLocker creates a SyncLocker wrapping the given Redis client.
func NewSyncLocker(client *redis.Client) *SyncLocker {
	return &SyncLocker{client: client}
}

// TryLock reports whether the lock for letterID was acquired. The lock
// expires on its own after lockTTL.
func (l *SyncLocker) TryLock(ctx context.Context, letterID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(letterID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire sync lock: %w", err)
	}
	return ok, nil
}

func (l *SyncLocker) Unlock(ctx context.Context, letterID string) error {
	if err := l.client.Del(ctx, l.key(letterID)).Err(); err != nil {
		return fmt.Errorf("release sync lock: %w", err)
	}
	return nil
}

func (l *SyncLocker) key(letterID string) string {
	return "synclock:" + letterID
}
