// Package hasher computes the non-cryptographic fingerprints used to tell
// whether a project or a report changed.
package hasher

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const (
	hashBufferSmallSize      = 32 * 1024
	hashBufferLargeSize      = 128 * 1024
	hashLargeBufferThreshold = 256 * 1024
)

var hashBufferSmallPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, hashBufferSmallSize)
		return &buf
	},
}

var hashBufferLargePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, hashBufferLargeSize)
		return &buf
	},
}

// Digest accumulates a fingerprint over strings and file contents. Each
// written value is length-delimited so adjacent values cannot collide.
type Digest struct {
	d *xxhash.Digest
}

func New() *Digest {
	return &Digest{d: xxhash.New()}
}

func (d *Digest) WriteString(s string) {
	d.delimit(int64(len(s)))
	_, _ = d.d.WriteString(s)
}

// WriteFile streams the contents of path into the digest.
func (d *Digest) WriteFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	bufferPool := &hashBufferSmallPool
	if info.Size() >= hashLargeBufferThreshold {
		bufferPool = &hashBufferLargePool
	}
	bufferPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufferPtr)

	d.delimit(info.Size())
	if _, err := io.CopyBuffer(d.d, io.LimitReader(file, info.Size()), *bufferPtr); err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	return nil
}

func (d *Digest) delimit(n int64) {
	var b [8]byte
	for i := range b {
		b[i] = byte(n >> (8 * i))
	}
	_, _ = d.d.Write(b[:])
}

// Sum returns the fingerprint as 16 hex digits.
func (d *Digest) Sum() string {
	return format(d.d.Sum64())
}

// Bytes fingerprints data in one call.
func Bytes(data []byte) string {
	return format(xxhash.Sum64(data))
}

func format(v uint64) string {
	return fmt.Sprintf("%016x", v)
}
