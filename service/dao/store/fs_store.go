package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/simos/service/dao"
)

// FsStore persists each entity as a JSON file named after its key under a base URL.
// Any afs supported storage works, e.g. file://, mem:// or s3://.
type FsStore[K comparable, T any] struct {
	baseURL     string
	fs          afs.Service
	mux         sync.RWMutex
	keySelector func(*T) K
	filter      func(*T, []*dao.Parameter) bool
}

// WithFilter sets the predicate List applies to parameters
func (s *FsStore[K, T]) WithFilter(filter func(*T, []*dao.Parameter) bool) *FsStore[K, T] {
	s.filter = filter
	return s
}

// Save writes v to <base>/<key>.json
func (s *FsStore[K, T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	URL := s.entityURL(s.keySelector(v))
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save %v: %w", URL, err)
	}
	return nil
}

// Load reads the entity stored under key
func (s *FsStore[K, T]) Load(ctx context.Context, key K) (*T, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	URL := s.entityURL(key)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v", dao.ErrNotFound, key)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	ret := new(T)
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %v: %w", URL, err)
	}
	return ret, nil
}

// Delete removes the entity stored under key
func (s *FsStore[K, T]) Delete(ctx context.Context, key K) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	URL := s.entityURL(key)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !exists {
		return fmt.Errorf("%w: %v", dao.ErrNotFound, key)
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete %v: %w", URL, err)
	}
	return nil
}

// List reads every stored entity; files that fail to decode are reported as an error
func (s *FsStore[K, T]) List(ctx context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(false))
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", s.baseURL, err)
	}
	var ret []*T
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", object.URL(), err)
		}
		v := new(T)
		if err = json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %v: %w", object.URL(), err)
		}
		if s.filter != nil && !s.filter(v, parameters) {
			continue
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func (s *FsStore[K, T]) entityURL(key K) string {
	return url.Join(s.baseURL, fmt.Sprintf("%v.json", key))
}

// NewFsStore creates a store rooted at baseURL, creating the location when missing
func NewFsStore[K comparable, T any](ctx context.Context, baseURL string, keySelector func(*T) K) (*FsStore[K, T], error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	fs := afs.New()
	baseURL = url.Normalize(baseURL, file.Scheme)
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %v: %w", baseURL, err)
		}
	}
	return &FsStore[K, T]{
		baseURL:     strings.TrimRight(baseURL, "/"),
		fs:          fs,
		keySelector: keySelector,
	}, nil
}

var _ dao.Service[string, struct{}] = (*FsStore[string, struct{}])(nil)
