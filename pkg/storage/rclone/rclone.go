package rclone

import (
	"context"
	"time"

	"github.com/rclone/rclone/fs"
	"github.com/rclone/rclone/fs/hash"
)

// SourceFile adapts an in-memory upload to rclone's fs.ObjectInfo so
// it can be handed to a remote backend's Put.
type SourceFile struct {
	remote  string
	path    string
	modTime time.Time
	size    int64
}

func NewSourceFile(remote string, path string, modTime time.Time, size int64) SourceFile {
	return SourceFile{
		remote:  remote,
		path:    path,
		modTime: modTime,
		size:    size,
	}
}

var _ fs.ObjectInfo = (*SourceFile)(nil)

func (s SourceFile) String() string {
	return s.path
}

func (s SourceFile) Remote() string {
	return s.path
}

func (s SourceFile) ModTime(ctx context.Context) time.Time {
	return s.modTime
}

func (s SourceFile) Size() int64 {
	return s.size
}

func (s SourceFile) Fs() fs.Info {
	return memoryFs{}
}

func (s SourceFile) Hash(ctx context.Context, ty hash.Type) (string, error) {
	return "", nil
}

func (s SourceFile) Storable() bool {
	return true
}

// memoryFs is the placeholder fs.Info for objects that only ever
// existed in memory.
type memoryFs struct{}

var _ fs.Info = (*memoryFs)(nil)

func (m memoryFs) Name() string             { return "memory" }
func (m memoryFs) Root() string             { return "/" }
func (m memoryFs) String() string           { return "" }
func (m memoryFs) Precision() time.Duration { return time.Second }
func (m memoryFs) Hashes() hash.Set         { return hash.Set(hash.None) }
func (m memoryFs) Features() *fs.Features   { return &fs.Features{} }
