// Package favorites persists the user's favorite universities as one JSON
// array under a single storage key.
package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jeanpaul/unifind/internal/apperr"
	"github.com/jeanpaul/unifind/internal/kv"
	"github.com/jeanpaul/unifind/internal/model"
)

// StorageKey is the name the favorites array is stored under before
// namespacing.
const StorageKey = "favorite_universities"

// AddOutcome reports what Add did with a candidate.
type AddOutcome int

const (
	Added AddOutcome = iota
	AlreadyExists
	Rejected
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyExists:
		return "already_exists"
	default:
		return "rejected"
	}
}

// RemoveOutcome reports whether Remove found a matching entry.
type RemoveOutcome int

const (
	Removed RemoveOutcome = iota
	NotFound
)

func (o RemoveOutcome) String() string {
	if o == Removed {
		return "removed"
	}
	return "not_found"
}

// Store reads and rewrites the whole favorites list on every operation.
// Read-modify-write cycles are serialized by mu; the list never holds two
// entries with the same WebPage.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger mutations are recorded on.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNamespace prefixes the storage key.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.key = kv.Key(ns, StorageKey) }
}

// New creates a Store over store. Without WithNamespace the key is
// StorageKey.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		key:    StorageKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the effective storage key.
func (s *Store) Key() string { return s.key }

// List returns the stored favorites in insertion order. On any failure the
// returned slice is empty, never nil, alongside the error.
func (s *Store) List(ctx context.Context) ([]model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load(ctx, "favorites.list")
	if err != nil {
		s.logger.Warn("favorites list failed", "key", s.key, "error", err)
		return []model.Favorite{}, err
	}
	return favs, nil
}

// Add appends candidate unless its WebPage is blank or already stored.
// WebPage is stored and compared exactly as given.
func (s *Store) Add(ctx context.Context, candidate model.Favorite) (AddOutcome, error) {
	if strings.TrimSpace(candidate.WebPage) == "" {
		return Rejected, apperr.Validation("favorites.add",
			"%q has no valid web page to add to favorites", candidate.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load(ctx, "favorites.add")
	if err != nil {
		return Rejected, err
	}
	if indexOf(favs, candidate.WebPage) >= 0 {
		s.logger.Info("favorite already stored", "web_page", candidate.WebPage, "outcome", AlreadyExists)
		return AlreadyExists, nil
	}

	favs = append(favs, candidate)
	if err := s.save(ctx, "favorites.add", favs); err != nil {
		return Rejected, err
	}
	s.logger.Info("favorite added", "web_page", candidate.WebPage, "name", candidate.Name, "outcome", Added)
	return Added, nil
}

// Remove drops every entry whose WebPage equals target's. Storage is only
// written when something was removed.
func (s *Store) Remove(ctx context.Context, target model.Favorite) (RemoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load(ctx, "favorites.remove")
	if err != nil {
		return NotFound, err
	}

	kept := make([]model.Favorite, 0, len(favs))
	for _, f := range favs {
		if f.WebPage != target.WebPage {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		s.logger.Info("favorite not found", "web_page", target.WebPage, "outcome", NotFound)
		return NotFound, nil
	}

	if err := s.save(ctx, "favorites.remove", kept); err != nil {
		return NotFound, err
	}
	s.logger.Info("favorite removed", "web_page", target.WebPage, "outcome", Removed)
	return Removed, nil
}

// Import adds every entry of batch that passes the Add rules, in one
// read-modify-write cycle. It returns how many entries were added.
func (s *Store) Import(ctx context.Context, batch []model.Favorite) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load(ctx, "favorites.import")
	if err != nil {
		return 0, err
	}

	added := 0
	for _, f := range batch {
		if strings.TrimSpace(f.WebPage) == "" || indexOf(favs, f.WebPage) >= 0 {
			continue
		}
		favs = append(favs, f)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.save(ctx, "favorites.import", favs); err != nil {
		return 0, err
	}
	s.logger.Info("favorites imported", "added", added, "skipped", len(batch)-added)
	return added, nil
}

func (s *Store) load(ctx context.Context, op string) ([]model.Favorite, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, apperr.StorageRead(op, err, "could not load saved favorites")
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return []model.Favorite{}, nil
	}

	var favs []model.Favorite
	if err := json.Unmarshal(raw, &favs); err != nil {
		return nil, apperr.StorageRead(op, err, "could not load saved favorites")
	}
	if favs == nil {
		favs = []model.Favorite{}
	}
	return favs, nil
}

func (s *Store) save(ctx context.Context, op string, favs []model.Favorite) error {
	data, err := json.Marshal(favs)
	if err != nil {
		return apperr.StorageWrite(op, err, "could not save favorites")
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("favorites write failed", "key", s.key, "op", op, "error", err)
		return apperr.StorageWrite(op, err, "could not save favorites")
	}
	return nil
}

func indexOf(favs []model.Favorite, webPage string) int {
	for i, f := range favs {
		if f.WebPage == webPage {
			return i
		}
	}
	return -1
}
