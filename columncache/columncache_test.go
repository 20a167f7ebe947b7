package columncache

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/goliatone/go-model-attributes/attributes"
	"github.com/goliatone/go-model-attributes/cache"
	"github.com/goliatone/go-model-attributes/schema"
)

func TestColumns_UsersScenario(t *testing.T) {
	fx := loadUsers(t)
	inspector := newCountingInspector(map[string][]string{fx.Table: fx.Introspected})
	c := New(newMapStore(t), inspector)
	ctx := context.Background()

	withPK, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(withPK, fx.WithPK) {
		t.Errorf("expected %v, got %v", fx.WithPK, withPK)
	}

	withoutPK, err := c.Columns(ctx, fx.table(), false)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(withoutPK, fx.WithoutPK) {
		t.Errorf("expected %v, got %v", fx.WithoutPK, withoutPK)
	}

	if got := inspector.Calls(fx.Table); got != 1 {
		t.Errorf("expected one introspection, got %d", got)
	}
	if !reflect.DeepEqual(fx.Introspected, []string{"id", "email", "created_at", "name"}) {
		t.Errorf("inspector listing was mutated: %v", fx.Introspected)
	}
}

func TestColumns_CachedAcrossCalls(t *testing.T) {
	fx := loadUsers(t)
	inspector := newCountingInspector(map[string][]string{fx.Table: fx.Introspected})
	c := New(newMapStore(t), inspector)
	ctx := context.Background()

	first, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	second, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical listings, got %v and %v", first, second)
	}
	if got := inspector.Calls(fx.Table); got != 1 {
		t.Errorf("expected one introspection, got %d", got)
	}
}

func TestColumns_WithoutPKPreservesOrder(t *testing.T) {
	inspector := newCountingInspector(map[string][]string{
		"orders": {"total", "uuid", "customer_id", "placed_at"},
	})
	c := New(newMapStore(t), inspector)
	table := schema.Table{Name: "orders", PrimaryKey: "uuid"}
	ctx := context.Background()

	all, err := c.Columns(ctx, table, true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	filtered, err := c.Columns(ctx, table, false)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}

	var want []string
	for _, column := range all {
		if column != "uuid" {
			want = append(want, column)
		}
	}
	if !reflect.DeepEqual(filtered, want) {
		t.Errorf("expected %v, got %v", want, filtered)
	}
}

func TestColumns_ReturnsCopies(t *testing.T) {
	fx := loadUsers(t)
	c := New(newMapStore(t), newCountingInspector(map[string][]string{fx.Table: fx.Introspected}))
	ctx := context.Background()

	first, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	first[0] = "tampered"

	filtered, err := c.Columns(ctx, fx.table(), false)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	filtered[0] = "tampered"

	again, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(again, fx.WithPK) {
		t.Errorf("cached entry was mutated through a returned slice: %v", again)
	}
}

func TestInvalidate(t *testing.T) {
	fx := loadUsers(t)
	inspector := newCountingInspector(map[string][]string{fx.Table: fx.Introspected})
	c := New(newMapStore(t), inspector)
	ctx := context.Background()

	if _, err := c.Columns(ctx, fx.table(), true); err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if err := c.Invalidate(ctx, fx.table()); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	cached, err := c.Cached(ctx, fx.table())
	if err != nil || cached {
		t.Errorf("expected no cached entry after Invalidate, got %v %v", cached, err)
	}

	columns, err := c.Columns(ctx, fx.table(), true)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(columns, fx.WithPK) {
		t.Errorf("expected %v, got %v", fx.WithPK, columns)
	}
	if got := inspector.Calls(fx.Table); got != 2 {
		t.Errorf("expected exactly one fresh introspection, got %d calls", got)
	}
}

func TestInvalidate_UncachedTable(t *testing.T) {
	c := New(newMapStore(t), newCountingInspector(nil))

	if err := c.Invalidate(context.Background(), schema.Table{Name: "users", PrimaryKey: "id"}); err != nil {
		t.Errorf("expected Invalidate on an empty store to succeed, got %v", err)
	}
}

func TestKey(t *testing.T) {
	c := New(newMapStore(t), newCountingInspector(nil))
	if got := c.Key(schema.Table{Name: "users"}); got != "relation_schema-users" {
		t.Errorf("expected relation_schema-users, got %q", got)
	}

	custom := New(newMapStore(t), newCountingInspector(nil), WithKeySerializer(cache.NewKeySerializer(":")))
	if got := custom.Key(schema.Table{Name: "users"}); got != "relation_schema:users" {
		t.Errorf("expected relation_schema:users, got %q", got)
	}
}

func TestColumns_StoresSortedListing(t *testing.T) {
	fx := loadUsers(t)
	store := newMapStore(t)
	c := New(store, newCountingInspector(map[string][]string{fx.Table: fx.Introspected}))
	ctx := context.Background()

	if _, err := c.Columns(ctx, fx.table(), false); err != nil {
		t.Fatalf("Columns failed: %v", err)
	}

	value, found, err := store.Get(ctx, "relation_schema-users")
	if err != nil || !found {
		t.Fatalf("expected stored listing, got found=%v err=%v", found, err)
	}
	stored, ok := value.([]string)
	if !ok {
		t.Fatalf("expected []string in the store, got %T", value)
	}
	if !reflect.DeepEqual(stored, fx.WithPK) {
		t.Errorf("expected the full sorted listing in the store, got %v", stored)
	}
}

func TestColumns_Corruption(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "integer", value: 42},
		{name: "string", value: "id,email"},
		{name: "mixed sequence", value: []any{"id", 7}},
		{name: "map", value: map[string]any{"id": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore(t)
			inspector := newCountingInspector(map[string][]string{"users": {"id"}})
			c := New(store, inspector)
			ctx := context.Background()

			if err := store.PutForever(ctx, "relation_schema-users", tt.value); err != nil {
				t.Fatalf("PutForever failed: %v", err)
			}

			_, err := c.Columns(ctx, schema.Table{Name: "users", PrimaryKey: "id"}, true)
			var corruption *CorruptionError
			if !errors.As(err, &corruption) {
				t.Fatalf("expected *CorruptionError, got %T (%v)", err, err)
			}
			if corruption.Table != "users" || corruption.Key != "relation_schema-users" {
				t.Errorf("unexpected corruption details: %+v", corruption)
			}
			if !IsCorruption(err) {
				t.Error("expected IsCorruption to match")
			}
			if inspector.Calls("users") != 0 {
				t.Error("corrupt entries must not trigger introspection")
			}
		})
	}
}

func TestColumns_AcceptsDecodedSequence(t *testing.T) {
	store := newMapStore(t)
	inspector := newCountingInspector(nil)
	c := New(store, inspector)
	ctx := context.Background()

	if err := store.PutForever(ctx, "relation_schema-users", []any{"email", "id"}); err != nil {
		t.Fatalf("PutForever failed: %v", err)
	}

	columns, err := c.Columns(ctx, schema.Table{Name: "users", PrimaryKey: "id"}, false)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(columns, []string{"email"}) {
		t.Errorf("expected [email], got %v", columns)
	}
}

func TestColumns_LookupError(t *testing.T) {
	store := newMapStore(t)
	inspector := newCountingInspector(nil)
	inspector.err = errors.New("permission denied")
	c := New(store, inspector)
	ctx := context.Background()
	table := schema.Table{Name: "users", PrimaryKey: "id"}

	_, err := c.Columns(ctx, table, true)
	var lookupErr *schema.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *schema.LookupError, got %T (%v)", err, err)
	}
	if lookupErr.Table != "users" {
		t.Errorf("expected table users, got %q", lookupErr.Table)
	}

	if cached, _ := c.Cached(ctx, table); cached {
		t.Error("failed introspection must not populate the store")
	}
}

func TestColumns_MissingTable(t *testing.T) {
	c := New(newMapStore(t), newCountingInspector(nil))

	_, err := c.Columns(context.Background(), schema.Table{Name: "ghosts", PrimaryKey: "id"}, true)
	if !schema.IsTableNotFound(err) {
		t.Errorf("expected table not found, got %v", err)
	}
}

func TestColumns_StoreUnavailable(t *testing.T) {
	inspector := newCountingInspector(map[string][]string{"users": {"id"}})
	c := New(failingStore{err: errStoreDown}, inspector)
	ctx := context.Background()
	table := schema.Table{Name: "users", PrimaryKey: "id"}

	if _, err := c.Columns(ctx, table, true); !cache.IsUnavailable(err) || !errors.Is(err, errStoreDown) {
		t.Errorf("expected unavailable error wrapping the cause, got %v", err)
	}
	if err := c.Invalidate(ctx, table); !cache.IsUnavailable(err) {
		t.Errorf("expected unavailable error from Invalidate, got %v", err)
	}
	if _, err := c.Cached(ctx, table); !cache.IsUnavailable(err) {
		t.Errorf("expected unavailable error from Cached, got %v", err)
	}
	if inspector.Calls("users") != 0 {
		t.Error("an unreachable store must not trigger introspection")
	}
}

func TestColumns_CodecStore(t *testing.T) {
	fx := loadUsers(t)
	backend := newBlobBackend()
	inspector := newCountingInspector(map[string][]string{fx.Table: fx.Introspected})
	c := New(cache.NewCodecStore(backend), inspector)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		columns, err := c.Columns(ctx, fx.table(), false)
		if err != nil {
			t.Fatalf("Columns failed: %v", err)
		}
		if !reflect.DeepEqual(columns, fx.WithoutPK) {
			t.Errorf("expected %v, got %v", fx.WithoutPK, columns)
		}
	}
	if got := inspector.Calls(fx.Table); got != 1 {
		t.Errorf("expected one introspection, got %d", got)
	}

	backend.data["relation_schema-users"] = []byte{0xc1}
	_, err := c.Columns(ctx, fx.table(), true)
	if !IsCorruption(err) {
		t.Errorf("expected corruption for an undecodable payload, got %v", err)
	}
}

func TestColumns_EmptyListingThroughCodecStore(t *testing.T) {
	backend := newBlobBackend()
	var calls int
	inspector := schema.InspectorFunc(func(ctx context.Context, table string) ([]string, error) {
		calls++
		return nil, nil
	})
	c := New(cache.NewCodecStore(backend), inspector)
	ctx := context.Background()
	table := schema.Table{Name: "empty", PrimaryKey: "id"}

	for i := 0; i < 2; i++ {
		_, err := c.Columns(ctx, table, true)
		if !schema.IsTableNotFound(err) {
			t.Fatalf("call %d: expected table not found, got %v", i+1, err)
		}
		if IsCorruption(err) {
			t.Fatalf("call %d: empty listing reported as corruption: %v", i+1, err)
		}
	}

	if len(backend.data) != 0 {
		t.Errorf("expected nothing cached for an empty listing, got %v", backend.data)
	}
	if calls != 2 {
		t.Errorf("expected every call to introspect, got %d", calls)
	}
}

func TestFlush(t *testing.T) {
	inspector := newCountingInspector(map[string][]string{
		"users": {"id", "email"},
		"posts": {"id", "title"},
	})
	store := newMapStore(t)
	c := New(store, inspector)
	ctx := context.Background()
	users := schema.Table{Name: "users", PrimaryKey: "id"}
	posts := schema.Table{Name: "posts", PrimaryKey: "id"}

	if err := store.PutForever(ctx, "sessions-1", "keep"); err != nil {
		t.Fatalf("PutForever failed: %v", err)
	}
	for _, table := range []schema.Table{users, posts} {
		if _, err := c.Columns(ctx, table, true); err != nil {
			t.Fatalf("Columns failed: %v", err)
		}
	}

	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	for _, table := range []schema.Table{users, posts} {
		if cached, _ := c.Cached(ctx, table); cached {
			t.Errorf("expected %s to be flushed", table.Name)
		}
	}
	if ok, _ := store.Has(ctx, "sessions-1"); !ok {
		t.Error("Flush must only drop column listings")
	}
}

func TestFlush_Unsupported(t *testing.T) {
	c := New(failingStore{}, newCountingInspector(nil))
	if err := c.Flush(context.Background()); err == nil {
		t.Error("expected error for a store without prefix support")
	}
}

func TestFlush_CodecBackendWithoutPrefixDelete(t *testing.T) {
	backend := struct{ cache.BlobBackend }{newBlobBackend()}
	c := New(cache.NewCodecStore(backend), newCountingInspector(nil))

	err := c.Flush(context.Background())
	if !errors.Is(err, cache.ErrPrefixUnsupported) {
		t.Fatalf("expected ErrPrefixUnsupported, got %v", err)
	}
	if cache.IsUnavailable(err) {
		t.Errorf("a missing capability must not be reported as an unavailable store: %v", err)
	}
}

func TestFillable(t *testing.T) {
	fx := loadUsers(t)
	c := New(newMapStore(t), newCountingInspector(map[string][]string{fx.Table: fx.Introspected}))
	ctx := context.Background()

	attrs := map[string]any{"id": 9, "email": "a@example.com", "is_admin": true}

	got, err := c.Fillable(ctx, fx.table(), attrs, false)
	if err != nil {
		t.Fatalf("Fillable failed: %v", err)
	}
	if want := map[string]any{"email": "a@example.com"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, err = c.Fillable(ctx, fx.table(), attrs, true)
	if err != nil {
		t.Fatalf("Fillable failed: %v", err)
	}
	if want := map[string]any{"id": 9, "email": "a@example.com"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestColumns_ModelType(t *testing.T) {
	fx := loadUsers(t)
	users := attributes.MustModelType(attributes.Definition{Name: "User"})
	c := New(newMapStore(t), newCountingInspector(map[string][]string{fx.Table: fx.Introspected}))

	columns, err := c.Columns(context.Background(), users, false)
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if !reflect.DeepEqual(columns, fx.WithoutPK) {
		t.Errorf("expected %v, got %v", fx.WithoutPK, columns)
	}
}

func TestColumns_Concurrent(t *testing.T) {
	fx := loadUsers(t)
	inspector := newCountingInspector(map[string][]string{fx.Table: fx.Introspected})
	store, err := cache.NewStore(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	c := New(store, inspector)

	var wg sync.WaitGroup
	results := make([][]string, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Columns(context.Background(), fx.table(), true)
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("Columns failed: %v", errs[i])
		}
		if !reflect.DeepEqual(results[i], fx.WithPK) {
			t.Errorf("goroutine %d got %v", i, results[i])
		}
	}
	if calls := inspector.Calls(fx.Table); calls < 1 || calls > len(results) {
		t.Errorf("unexpected introspection count %d", calls)
	}
}
