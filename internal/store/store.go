// Package store implements the Record Store: it loads the four tables from
// a Container, serves them from a time-bounded cache, and persists them as
// one unit on every write.
package store

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// cacheEntry is one successful load and the time it happened.
type cacheEntry struct {
	data     types.Dataset
	loadedAt time.Time
}

// Store implements types.RecordStore.
type Store struct {
	// mu serializes writes and guards cache. A full-container overwrite
	// must never interleave with another.
	mu        sync.Mutex
	container types.Container
	ttl       time.Duration
	cache     *cacheEntry

	now      func() time.Time
	logger   *slog.Logger
	validate *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long a successful load is reused. Zero disables the
// cache.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a Store reading and writing c.
func New(c types.Container, opts ...Option) *Store {
	s := &Store{
		container: c,
		ttl:       types.DefaultCacheTTL,
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns a copy of the four tables. A fresh cache entry is served
// without touching storage. On a read failure Load returns an empty
// Dataset together with a *types.LoadError; the failure is not cached.
func (s *Store) Load() (types.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.loadLocked()
	if err != nil {
		return types.EmptyDataset(), err
	}
	return d.Clone(), nil
}

// loadLocked returns the cached or freshly read Dataset. The result
// shares slices with the cache; callers copy before handing it out.
// The caller must hold s.mu.
func (s *Store) loadLocked() (types.Dataset, error) {
	if s.cache != nil && s.ttl > 0 && s.now().Sub(s.cache.loadedAt) < s.ttl {
		return s.cache.data, nil
	}

	d, err := s.container.Read()
	if err != nil {
		s.cache = nil
		s.logger.Warn("load failed, using empty tables", "path", s.container.Path(), "error", err)
		return types.Dataset{}, &types.LoadError{Path: s.container.Path(), Err: err}
	}
	d = d.Clone()
	if s.ttl > 0 {
		s.cache = &cacheEntry{data: d, loadedAt: s.now()}
	}
	s.logger.Debug("loaded container",
		"path", s.container.Path(),
		"children", len(d.Children),
		"grades", len(d.Grades),
		"homework", len(d.Homework),
		"announcements", len(d.Announcements))
	return d, nil
}

// Save replaces the container content with d and invalidates the cache.
// On failure the cache and the container are left as they were.
func (s *Store) Save(d types.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(d.Clone())
}

// saveLocked writes d. The caller must hold s.mu.
func (s *Store) saveLocked(d types.Dataset) error {
	if err := s.container.Write(d); err != nil {
		s.logger.Error("save failed", "path", s.container.Path(), "error", err)
		return &types.StorageWriteError{Path: s.container.Path(), Err: err}
	}
	s.cache = nil
	s.logger.Info("saved container", "path", s.container.Path(), "children", len(d.Children))
	return nil
}

// newChild is the validated input of AddChild.
type newChild struct {
	Name     string `validate:"required"`
	PhotoRef string
}

// AddChild appends a child named name with the next free id and saves the
// whole Dataset. Surrounding spaces are trimmed from both arguments. An
// empty name is rejected before anything is read or written.
//
// The read-modify-write runs under the store lock so concurrent callers
// get distinct ids and neither write is lost. If the container cannot be
// read, AddChild fails with the *types.LoadError instead of overwriting
// the file with a single row.
func (s *Store) AddChild(name, photoRef string) (types.Child, error) {
	in := newChild{Name: strings.TrimSpace(name), PhotoRef: strings.TrimSpace(photoRef)}
	if err := s.validate.Struct(in); err != nil {
		return types.Child{}, &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil && !isMissingContainer(err) {
		return types.Child{}, err
	}

	d := current.Clone()
	child := types.Child{ID: d.NextChildID(), Name: in.Name, PhotoRef: in.PhotoRef}
	d.Children = append(d.Children, child)
	if err := s.saveLocked(d); err != nil {
		return types.Child{}, err
	}
	s.logger.Info("added child", "id", child.ID)
	return child, nil
}

// isMissingContainer reports whether err only says the container file does
// not exist yet, in which case the first write creates it.
func isMissingContainer(err error) bool {
	return errors.Is(err, types.ErrContainerNotFound)
}

var _ types.RecordStore = (*Store)(nil)
