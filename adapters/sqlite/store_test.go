package sqlite

import (
	"context"
	"testing"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/ports"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// A pooled second connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCustomerStoreLifecycle(t *testing.T) {
	db := testDB(t)
	store := NewCustomerStore(db)
	ctx := context.Background()

	c := customer.Customer{ID: "c1", Name: "Acme", Email: "ops@acme.test"}
	if err := store.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := store.Find(ctx, "c1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got, ok := found.Get()
	if !ok {
		t.Fatal("find: expected a hit")
	}
	if got.Name != "Acme" || got.Email != "ops@acme.test" {
		t.Errorf("got %+v, want name Acme email ops@acme.test", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped on create")
	}

	got.Name = "Acme Corp"
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	found, _ = store.Find(ctx, "c1")
	if got, _ := found.Get(); got.Name != "Acme Corp" {
		t.Errorf("got %q, want Acme Corp", got.Name)
	}

	// Soft delete returns the stamped record and hides it from reads.
	deleted, err := store.Delete(ctx, "c1", false)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	row, ok := deleted.Get()
	if !ok {
		t.Fatal("soft delete: expected the stamped record")
	}
	if row.DeletedAt == nil {
		t.Error("soft delete: deleted_at not stamped")
	}
	found, err = store.Find(ctx, "c1")
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if found.Ok() {
		t.Error("soft-deleted record still visible")
	}
}

func TestCustomerStoreHardDelete(t *testing.T) {
	db := testDB(t)
	store := NewCustomerStore(db)
	ctx := context.Background()

	if err := store.Create(ctx, customer.Customer{ID: "c1", Name: "Acme"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	gone, err := store.Delete(ctx, "c1", true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gone.Ok() {
		t.Error("hard delete: expected the empty variant")
	}
	if _, err := store.Delete(ctx, "c1", true); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCustomerStoreListFilters(t *testing.T) {
	db := testDB(t)
	store := NewCustomerStore(db)
	ctx := context.Background()

	for _, c := range []customer.Customer{
		{ID: "c1", Name: "Acme", Email: "a@x.test"},
		{ID: "c2", Name: "Beta", Email: "b@x.test"},
		{ID: "c3", Name: "Acme South", Email: "c@x.test"},
	} {
		if err := store.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", c.ID, err)
		}
	}

	got, err := store.List(ctx, ports.ListQuery{
		Limit:   10,
		Sort:    []string{"name"},
		Filters: map[string]any{"name": map[string]any{"like": "Acme%"}},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d customers, want 2", len(got))
	}
	if got[0].Name != "Acme" || got[1].Name != "Acme South" {
		t.Errorf("got %q, %q; want Acme, Acme South", got[0].Name, got[1].Name)
	}
}

func TestUserStoreUsernameUniqueness(t *testing.T) {
	db := testDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	if err := store.Create(ctx, user.User{ID: "u1", Username: "alice", Status: "active"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := store.Create(ctx, user.User{ID: "u2", Username: "alice", Status: "active"})
	if err != ErrDuplicate {
		t.Errorf("got %v, want ErrDuplicate", err)
	}

	found, err := store.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if u, ok := found.Get(); !ok || u.ID != "u1" {
		t.Errorf("got %+v, want u1", u)
	}
	if found, _ := store.GetByUsername(ctx, "nobody"); found.Ok() {
		t.Error("unknown username: expected a miss")
	}
}

func TestRoleStoreForUser(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	roles := NewRoleStore(db)
	memberships := NewUserRoleStore(db)
	ctx := context.Background()

	if err := users.Create(ctx, user.User{ID: "u1", Username: "alice", Status: "active"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := roles.Create(ctx, user.Role{ID: "r1", Name: "sales", Permissions: []string{"quotes.read", "quotes.write"}}); err != nil {
		t.Fatalf("create role: %v", err)
	}
	if err := roles.Create(ctx, user.Role{ID: "r2", Name: "admin", Permissions: []string{"users.write"}}); err != nil {
		t.Fatalf("create role: %v", err)
	}
	if _, err := memberships.Add(ctx, "u1", []string{"r1", "r2"}); err != nil {
		t.Fatalf("add memberships: %v", err)
	}

	got, err := roles.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d roles, want 2", len(got))
	}
	if got[0].Name != "sales" || len(got[0].Permissions) != 2 {
		t.Errorf("got %+v, want sales with 2 permissions", got[0])
	}

	// Detached memberships no longer contribute roles.
	if _, err := memberships.SoftDelete(ctx, "u1", "r2"); err != nil {
		t.Fatalf("soft delete membership: %v", err)
	}
	got, err = roles.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(got) != 1 || got[0].Name != "sales" {
		t.Errorf("got %+v, want only sales", got)
	}
}

func quoteFixture(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	if err := NewCustomerStore(db).Create(ctx, customer.Customer{ID: "c1", Name: "Acme"}); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if err := NewWorkerStore(db).Create(ctx, worker.Worker{ID: "w1", Name: "Sam"}); err != nil {
		t.Fatalf("create worker: %v", err)
	}
	if err := NewServiceStore(db).Create(ctx, service.Service{ID: "s1", Name: "Install", Price: 15000}); err != nil {
		t.Fatalf("create service: %v", err)
	}
	if err := NewQuoteStore(db).Create(ctx, quote.Quote{
		ID: "q1", Code: "Q-0001", CustomerID: "c1", SalesmanID: "w1", Status: quote.StatusAwaiting,
	}); err != nil {
		t.Fatalf("create quote: %v", err)
	}
}

func TestQuoteServiceStoreAddDefaultsPrice(t *testing.T) {
	db := testDB(t)
	quoteFixture(t, db)
	store := NewQuoteServiceStore(db)
	ctx := context.Background()

	lines, err := store.Add(ctx, "q1", []string{"s1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Quantity != 1 || lines[0].Price != 15000 {
		t.Errorf("got quantity %d price %d, want 1 and 15000", lines[0].Quantity, lines[0].Price)
	}
}

func TestQuoteServiceStoreUpdateTouchesLineOnly(t *testing.T) {
	db := testDB(t)
	quoteFixture(t, db)
	store := NewQuoteServiceStore(db)
	ctx := context.Background()

	if _, err := store.Add(ctx, "q1", []string{"s1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	qty := 3
	price := int64(12000)
	line, err := store.Update(ctx, "q1", "s1", quote.LinePatch{Quantity: &qty, Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if line.Quantity != 3 || line.Price != 12000 {
		t.Errorf("got quantity %d price %d, want 3 and 12000", line.Quantity, line.Price)
	}

	// The override never reaches the service's base price.
	svc, err := NewServiceStore(db).Find(ctx, "s1")
	if err != nil {
		t.Fatalf("find service: %v", err)
	}
	if got, _ := svc.Get(); got.Price != 15000 {
		t.Errorf("base price changed to %d, want 15000", got.Price)
	}
}

func TestQuoteServiceStoreSoftDeleteAndRevive(t *testing.T) {
	db := testDB(t)
	quoteFixture(t, db)
	store := NewQuoteServiceStore(db)
	ctx := context.Background()

	if _, err := store.Add(ctx, "q1", []string{"s1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	qty := 5
	if _, err := store.Update(ctx, "q1", "s1", quote.LinePatch{Quantity: &qty}); err != nil {
		t.Fatalf("update: %v", err)
	}

	line, err := store.SoftDelete(ctx, "q1", "s1")
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if line.DeletedAt == nil {
		t.Error("soft delete: deleted_at not stamped")
	}
	if lines, _ := store.List(ctx, "q1", assoc.Page{Limit: 10}); len(lines) != 0 {
		t.Errorf("got %d lines after soft delete, want 0", len(lines))
	}

	// Re-adding revives the line with its override intact.
	lines, err := store.Add(ctx, "q1", []string{"s1"})
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Errorf("got %+v, want revived line with quantity 5", lines)
	}

	if err := store.HardDelete(ctx, "q1", "s1"); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if err := store.HardDelete(ctx, "q1", "s1"); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
