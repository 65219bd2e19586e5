package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("blob not found")
	// ErrUnavailable wraps network/backend failures so callers can offer a
	// retry instead of treating the failure as permanent.
	ErrUnavailable = errors.New("blob backend unavailable")
)

// Store is the blob half of the persistence layer. Implementations must make
// Delete idempotent: deleting a missing key is success, because cleanup paths
// run after partial failures.
type Store interface {
	// Put stores the payload under key. Retrying a failed Put with the same
	// key must not corrupt unrelated data; callers generate fresh
	// timestamp-prefixed keys per attempt for that reason.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error

	// URL resolves key to a retrievable reference. Depending on the backend
	// this is a permanent public URL or a short-lived signed URL; callers
	// must re-resolve on every read rather than cache the result.
	URL(ctx context.Context, key string) (string, error)

	Delete(ctx context.Context, key string) error
}

var (
	keyMu   sync.Mutex
	lastKey int64
)

// NewKey builds a storage key from a prefix and a display file name. The
// display name is kept separate from the key; here it only seeds a readable
// suffix. The millisecond timestamp is bumped monotonically so two keys
// minted in the same millisecond never collide.
func NewKey(prefix, name string) string {
	keyMu.Lock()
	ts := time.Now().UnixMilli()
	if ts <= lastKey {
		ts = lastKey + 1
	}
	lastKey = ts
	keyMu.Unlock()

	return fmt.Sprintf("%s/%d_%s", prefix, ts, SanitizeName(name))
}

// SanitizeName restricts a file name to characters safe for use inside a
// storage key. Everything else becomes an underscore.
func SanitizeName(name string) string {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 80 {
		name = name[len(name)-80:]
	}
	if name == "" || name == "." {
		return "file"
	}
	return name
}
