// Package security bounds the untrusted input the CLI reads.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxDocumentSize caps token documents read from disk.
const MaxDocumentSize = 1 << 20

// ErrSizeLimit is returned when input exceeds its size limit.
var ErrSizeLimit = errors.New("size limit exceeded")

// LimitedReader wraps an io.Reader and fails once more than Remaining bytes
// are requested, rather than silently truncating like io.LimitReader.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Only a byte past the limit is an error; an empty read or EOF at
		// exactly the limit passes through.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// ReadFile reads path, failing with ErrSizeLimit if it is larger than maxBytes.
func ReadFile(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(NewLimitedReader(f, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
