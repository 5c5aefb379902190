package app

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/adapters/idgen"
	"github.com/quoteflow/quoteflow/adapters/memory"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

type quoteFixture struct {
	svc       *QuoteService
	customers *memory.Store[customer.Customer]
	workers   *memory.Store[worker.Worker]
	services  *memory.Store[service.Service]
}

func newQuoteFixture(t *testing.T) quoteFixture {
	t.Helper()
	customers := memory.NewCustomerStore()
	workers := memory.NewWorkerStore()
	services := memory.NewServiceStore()
	svc := NewQuoteService(
		memory.NewQuoteStore(),
		customers,
		workers,
		memory.NewQuoteServiceStore(services),
		memory.NewQuoteMaterialStore(memory.NewMaterialStore()),
		&idgen.Sequential{},
		zerolog.Nop(),
	)
	ctx := context.Background()
	require.NoError(t, customers.Create(ctx, customer.Customer{ID: "c1", Name: "Acme"}))
	require.NoError(t, workers.Create(ctx, worker.Worker{ID: "w1", Name: "Sam"}))
	require.NoError(t, services.Create(ctx, service.Service{ID: "s1", Name: "Install", Price: 15000}))
	require.NoError(t, services.Create(ctx, service.Service{ID: "s2", Name: "Survey", Price: 5000}))
	return quoteFixture{svc: svc, customers: customers, workers: workers, services: services}
}

func TestQuoteCreateDefaults(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "w1"})
	require.NoError(t, err)

	assert.Equal(t, quote.StatusAwaiting, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.True(t, strings.HasPrefix(created.Code, "Q-"), "code %q should carry the Q- prefix", created.Code)
}

func TestQuoteCreateUnknownCustomerOrSalesman(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, quote.Quote{CustomerID: "missing", SalesmanID: "w1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "customer")

	_, err = f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "missing"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "salesman")
}

func TestQuoteStatusTransitions(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "w1"})
	require.NoError(t, err)

	// awaiting → done skips approval and must be rejected.
	_, err = f.svc.Update(ctx, created.ID, func(q quote.Quote) quote.Quote {
		q.Status = quote.StatusDone
		return q
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := f.svc.Update(ctx, created.ID, func(q quote.Quote) quote.Quote {
		q.Status = quote.StatusApproved
		return q
	})
	require.NoError(t, err)
	assert.Equal(t, quote.StatusApproved, updated.Status)

	updated, err = f.svc.Update(ctx, created.ID, func(q quote.Quote) quote.Quote {
		q.Status = quote.StatusDone
		return q
	})
	require.NoError(t, err)
	assert.Equal(t, quote.StatusDone, updated.Status)
}

func TestQuoteLineFlowChecksParentFirst(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	_, err := f.svc.ServiceLines().Add(ctx, "missing", []string{"s1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "quote", "the missing parent is reported, not the child")
}

func TestQuoteLineAddDefaultsPriceFromService(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "w1"})
	require.NoError(t, err)

	lines, err := f.svc.ServiceLines().Add(ctx, created.ID, []string{"s1"})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(15000), lines[0].Price, "new lines start at the service base price")
}

func TestQuoteTotalSkipsSoftDeletedLines(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "w1"})
	require.NoError(t, err)

	lines := f.svc.ServiceLines()
	_, err = lines.Add(ctx, created.ID, []string{"s1", "s2"})
	require.NoError(t, err)

	price := int64(10000)
	qty := 2
	_, err = lines.Update(ctx, created.ID, "s1", quote.LinePatch{Quantity: &qty, Price: &price})
	require.NoError(t, err)
	price2 := int64(5000)
	_, err = lines.Update(ctx, created.ID, "s2", quote.LinePatch{Price: &price2})
	require.NoError(t, err)

	total, err := f.svc.Total(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), total)

	_, err = lines.Delete(ctx, created.ID, "s2", false)
	require.NoError(t, err)

	total, err = f.svc.Total(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), total)
}

func TestQuoteSoftThenHardDelete(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, quote.Quote{CustomerID: "c1", SalesmanID: "w1"})
	require.NoError(t, err)

	deleted, err := f.svc.Delete(ctx, created.ID, false)
	require.NoError(t, err)
	row, ok := deleted.Get()
	require.True(t, ok, "soft delete returns the stamped record")
	assert.NotNil(t, row.DeletedAt)

	_, err = f.svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	gone, err := f.svc.Delete(ctx, created.ID, true)
	require.NoError(t, err)
	assert.False(t, gone.Ok(), "hard delete returns the empty variant")
}
