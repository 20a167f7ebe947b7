package columncache

import (
	"errors"
	"fmt"
)

// ErrCacheCorruption is the sentinel matched by every *CorruptionError.
var ErrCacheCorruption = errors.New("columncache: cache corruption")

// CorruptionError reports a cached entry that is not a list of column names.
type CorruptionError struct {
	Key   string
	Table string
	// Type is the dynamic type found in the store.
	Type string
	Err  error
}

func (e *CorruptionError) Error() string {
	msg := fmt.Sprintf("columncache: entry %s for table %q holds %s, want column names", e.Key, e.Table, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCacheCorruption) match.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCacheCorruption
}

// IsCorruption reports whether err came from an unreadable cache entry.
func IsCorruption(err error) bool {
	return errors.Is(err, ErrCacheCorruption)
}
