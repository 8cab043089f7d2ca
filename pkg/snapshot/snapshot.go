package snapshot

import (
	"context"
	"errors"
	"time"
)

// Common errors.
var (
	// ErrNotFound is returned when no snapshot has the requested name.
	ErrNotFound = errors.New("snapshot: not found")

	// ErrInvalidName is returned for names that are empty, too long, start
	// with a dot or contain characters outside [A-Za-z0-9._-].
	ErrInvalidName = errors.New("snapshot: invalid name")
)

// MaxNameLength is the longest accepted snapshot name.
const MaxNameLength = 128

// Store persists rendered HTML under a name.
type Store interface {
	// Put stores html under name, replacing any previous snapshot.
	Put(ctx context.Context, name string, html []byte) error

	// Get returns the snapshot stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the stored snapshots sorted by name.
	List(ctx context.Context) ([]Info, error)
}

// Info describes a stored snapshot.
type Info struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// ValidateName checks that name can be used as a snapshot name.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength || name[0] == '.' {
		return ErrInvalidName
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return ErrInvalidName
		}
	}
	return nil
}

// ext is appended to every stored object.
const ext = ".html"
