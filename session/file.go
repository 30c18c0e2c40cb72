package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/metafates/gache"
	"github.com/toumei/toumei/filesystem"
	"github.com/toumei/toumei/log"
)

// File is a Memory store that writes a snapshot to disk after every change
// and loads it back when opened. Persistence is best effort.
type File struct {
	*Memory

	mu    sync.Mutex
	cache *gache.Cache[*snapshot]
}

// OpenFile loads the snapshot at path, if any.
func OpenFile(path string) (*File, error) {
	f := &File{
		Memory: NewMemory(),
		cache: gache.New[*snapshot](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}

	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return f, nil
	}

	saved, expired, err := f.cache.Get()
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if !expired && saved != nil {
		f.restore(saved)
	}

	return f, nil
}

func (f *File) CreateSession(ctx context.Context, sessionID, title string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.Memory.CreateSession(ctx, sessionID, title)
	if err != nil {
		return s, err
	}
	f.persist()
	return s, nil
}

func (f *File) AppendMessage(ctx context.Context, sessionID string, role Role, content string) (Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg, err := f.Memory.AppendMessage(ctx, sessionID, role, content)
	if err != nil {
		return msg, err
	}
	f.persist()
	return msg, nil
}

func (f *File) persist() {
	if err := f.cache.Set(f.snapshot()); err != nil {
		log.Warnf("persist sessions: %v", err)
	}
}
