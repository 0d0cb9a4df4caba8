package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often TryLockContext retries acquisition.
const lockRetryDelay = 100 * time.Millisecond

// repoLock serializes index runs against one repository. Two concurrent
// runs over the same root would race on the diff and double-process files.
type repoLock struct {
	fl *flock.Flock
}

// acquireLock takes an advisory file lock under the repository's state
// directory, waiting up to the context deadline.
func acquireLock(ctx context.Context, root string) (*repoLock, error) {
	dir := filepath.Join(root, ".codescope")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, "index.lock"))
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire index lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("index lock held by another process")
	}
	return &repoLock{fl: fl}, nil
}

func (l *repoLock) release() {
	_ = l.fl.Unlock()
}
