package columncache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-model-attributes/cache"
	"github.com/goliatone/go-model-attributes/pkg/testsupport"
	"github.com/goliatone/go-model-attributes/schema"
)

type tableFixture struct {
	Table        string   `json:"table"`
	PrimaryKey   string   `json:"primary_key"`
	Introspected []string `json:"introspected"`
	WithPK       []string `json:"with_pk"`
	WithoutPK    []string `json:"without_pk"`
}

func loadUsers(t *testing.T) tableFixture {
	t.Helper()

	var fx tableFixture
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("users.json"), &fx)
	return fx
}

func (f tableFixture) table() schema.Table {
	return schema.Table{Name: f.Table, PrimaryKey: f.PrimaryKey}
}

// countingInspector serves fixed listings and counts introspections per table.
type countingInspector struct {
	mu      sync.Mutex
	columns map[string][]string
	calls   map[string]int
	err     error
}

func newCountingInspector(columns map[string][]string) *countingInspector {
	return &countingInspector{columns: columns, calls: make(map[string]int)}
}

func (i *countingInspector) ListColumns(ctx context.Context, table string) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.calls[table]++
	if i.err != nil {
		return nil, i.err
	}
	columns, ok := i.columns[table]
	if !ok {
		return nil, schema.NewLookupError(table, schema.ErrTableNotFound)
	}
	// hand out the inspector's own slice to catch in place mutation
	return columns, nil
}

func (i *countingInspector) Calls(table string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.calls[table]
}

func newMapStore(t *testing.T) cache.Store {
	t.Helper()

	store, err := cache.NewStore(cache.Config{Backend: cache.BackendMap})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

// failingStore reports every operation as failed.
type failingStore struct {
	err error
}

func (s failingStore) Has(ctx context.Context, key string) (bool, error) {
	return false, s.err
}

func (s failingStore) Get(ctx context.Context, key string) (any, bool, error) {
	return nil, false, s.err
}

func (s failingStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	return s.err
}

func (s failingStore) PutForever(ctx context.Context, key string, value any) error {
	return s.err
}

func (s failingStore) Forget(ctx context.Context, key string) error {
	return s.err
}

// blobBackend is an in-memory cache.BlobBackend.
type blobBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newBlobBackend() *blobBackend {
	return &blobBackend{data: make(map[string][]byte)}
}

func (b *blobBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data[key], nil
}

func (b *blobBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *blobBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func (b *blobBackend) DeletePrefix(ctx context.Context, prefix string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key := range b.data {
		if strings.HasPrefix(key, prefix) {
			delete(b.data, key)
		}
	}
	return nil
}

var errStoreDown = errors.New("connection refused")
