package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// sourceLockPath derives a stable lock file name from the absolute source
// path.
func sourceLockPath(dir, source string) string {
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	return filepath.Join(dir, uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()+".lock")
}

func acquireSourceLock(dir, source string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(sourceLockPath(dir, source))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire source lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, source)
	}
	return lock, nil
}
