package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abgdnv/missil/internal/blob"
	catalogerrors "github.com/abgdnv/missil/internal/errors"
)

// DefaultKey is the blob key the collection is persisted under.
const DefaultKey = "missil_cms_products"

const idPrefix = "cms_"

// Store is the admin product collection in insertion order.
// Every successful mutation writes the whole collection to the blob store.
type Store struct {
	mu       sync.RWMutex
	products []Product
	lastID   int64

	blobs  blob.Store
	key    string
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock replaces time.Now as the source of record ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store seeded from blobs. A nil blobs keeps the collection in memory only.
func NewStore(ctx context.Context, blobs blob.Store, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    DefaultKey,
		now:    time.Now,
		logger: logger.With("component", "cms"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if blobs != nil {
		s.products = LoadSnapshot(ctx, blobs, s.key, s.logger)
	}
	for _, p := range s.products {
		if n, ok := parseID(p.ID); ok && n > s.lastID {
			s.lastID = n
		}
	}
	s.logger.Info("CMS collection loaded", "count", len(s.products), "key", s.key)
	return s
}

// LoadSnapshot reads the persisted collection under key.
// A missing key, a read failure or undecodable data all yield an empty collection.
func LoadSnapshot(ctx context.Context, blobs blob.Store, key string, logger *slog.Logger) []Product {
	data, ok, err := blobs.Load(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "PersistenceWarning: failed to load CMS collection",
			"key", key, "error", fmt.Errorf("%w: %w", catalogerrors.ErrPersistence, err))
		return []Product{}
	}
	if !ok {
		return []Product{}
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.WarnContext(ctx, "PersistenceWarning: stored CMS collection is corrupt, starting empty",
			"key", key, "error", fmt.Errorf("%w: %w", catalogerrors.ErrPersistence, err))
		return []Product{}
	}
	if products == nil {
		products = []Product{}
	}
	return products
}

func parseID(id string) (int64, bool) {
	digits, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	return n, err == nil
}

// nextID must be called with s.mu held.
func (s *Store) nextID() string {
	n := s.now().UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	s.lastID = n
	return idPrefix + strconv.FormatInt(n, 10)
}

// persist must be called with s.mu held. Failures are logged and dropped.
func (s *Store) persist(ctx context.Context) {
	if s.blobs == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	data, err := json.Marshal(s.products)
	if err == nil {
		err = s.blobs.Save(ctx, s.key, data)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "PersistenceWarning: failed to save CMS collection",
			"key", s.key, "error", fmt.Errorf("%w: %w", catalogerrors.ErrPersistence, err))
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", catalogerrors.ErrProductNotFound, id)
}

// Add validates d and appends it as a new record.
func (s *Store) Add(ctx context.Context, d Draft) (Product, error) {
	if err := Validate(d); err != nil {
		return Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{ID: s.nextID()}
	d.apply(&p)
	s.products = append(s.products, p)
	s.persist(ctx)
	return p.clone(), nil
}

// Update replaces every mutable field of the record id with d.
func (s *Store) Update(ctx context.Context, id string, d Draft) (Product, error) {
	if err := Validate(d); err != nil {
		return Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, notFound(id)
	}
	d.apply(&s.products[i])
	s.persist(ctx)
	return s.products[i].clone(), nil
}

// Remove deletes the record id. It reports whether a record was removed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.products = slices.Delete(s.products, i, i+1)
	s.persist(ctx)
	return true
}

func (s *Store) ToggleBestseller(ctx context.Context, id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, notFound(id)
	}
	s.products[i].IsBestseller = !s.products[i].IsBestseller
	s.persist(ctx)
	return s.products[i].clone(), nil
}

// ReorderImages moves one image of the record id from index from to index to.
func (s *Store) ReorderImages(ctx context.Context, id string, from, to int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, notFound(id)
	}
	n := len(s.products[i].Images)
	if from < 0 || from >= n || to < 0 || to >= n {
		return Product{}, fmt.Errorf("%w: move %d to %d of %d images", catalogerrors.ErrIndexOutOfRange, from, to, n)
	}
	if from != to {
		s.products[i].Images = MoveElement(s.products[i].Images, from, to)
		s.persist(ctx)
	}
	return s.products[i].clone(), nil
}

// List returns a copy of every record in insertion order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.products, func(Product) bool { return true })
}

func (s *Store) Get(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, notFound(id)
	}
	return s.products[i].clone(), nil
}

// Bestsellers returns the flagged records, recomputed on every call.
func (s *Store) Bestsellers() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.products, func(p Product) bool { return p.IsBestseller })
}

func (s *Store) BestsellerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.products {
		if p.IsBestseller {
			count++
		}
	}
	return count
}

// DistinctCategories returns trimmed, lower-cased categories in first-seen order.
func (s *Store) DistinctCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.products))
	out := make([]string, 0, len(s.products))
	for _, p := range s.products {
		c := strings.ToLower(strings.TrimSpace(p.Category))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func cloneAll(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p.clone())
		}
	}
	return out
}
