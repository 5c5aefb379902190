package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

// QuoteService manages quotes and their service/material lines. Line
// operations go through the shared association flow: the quote's existence
// is checked before any line work, and updates touch the join row only.
type QuoteService struct {
	*Resource[quote.Quote]

	customers ports.CustomerStore
	workers   ports.WorkerStore
	services  *assoc.Flow[quote.Quote, quote.ServiceLine, quote.LinePatch]
	materials *assoc.Flow[quote.Quote, quote.MaterialLine, quote.LinePatch]
}

// NewQuoteService creates a new quote service.
func NewQuoteService(
	quotes ports.QuoteStore,
	customers ports.CustomerStore,
	workers ports.WorkerStore,
	serviceLines ports.QuoteServiceStore,
	materialLines ports.QuoteMaterialStore,
	idGen ports.IDGenerator,
	logger zerolog.Logger,
) *QuoteService {
	s := &QuoteService{
		Resource: NewResource("quote", quotes, idGen,
			func(q quote.Quote) string { return q.ID },
			func(q quote.Quote, id string) quote.Quote { q.ID = id; return q },
			logger),
		customers: customers,
		workers:   workers,
	}
	s.services = &assoc.Flow[quote.Quote, quote.ServiceLine, quote.LinePatch]{
		ParentLabel: "quote",
		ChildLabel:  "service",
		FindParent:  quotes.Find,
		ListJoins:   serviceLines.List,
		AddJoins:    serviceLines.Add,
		GetJoin:     serviceLines.Get,
		UpdateJoin:  serviceLines.Update,
		SoftDelete:  serviceLines.SoftDelete,
		HardDelete:  serviceLines.HardDelete,
	}
	s.materials = &assoc.Flow[quote.Quote, quote.MaterialLine, quote.LinePatch]{
		ParentLabel: "quote",
		ChildLabel:  "material",
		FindParent:  quotes.Find,
		ListJoins:   materialLines.List,
		AddJoins:    materialLines.Add,
		GetJoin:     materialLines.Get,
		UpdateJoin:  materialLines.Update,
		SoftDelete:  materialLines.SoftDelete,
		HardDelete:  materialLines.HardDelete,
	}
	return s
}

// Create stores a new quote. Customer and salesman must exist; status
// defaults to awaiting; an empty code is derived from the generated id.
func (s *QuoteService) Create(ctx context.Context, q quote.Quote) (quote.Quote, error) {
	var zero quote.Quote

	found, err := s.customers.Find(ctx, q.CustomerID)
	if err != nil {
		return zero, err
	}
	if _, err := found.OrFail("customer"); err != nil {
		return zero, err
	}
	salesman, err := s.workers.Find(ctx, q.SalesmanID)
	if err != nil {
		return zero, err
	}
	if _, err := salesman.OrFail("salesman"); err != nil {
		return zero, err
	}

	if q.Status == "" {
		q.Status = quote.DefaultStatus
	}
	if q.ID == "" {
		q.ID = s.idGen.New()
	}
	if q.Code == "" {
		q.Code = deriveCode(q.ID)
	}
	return s.Resource.Create(ctx, q)
}

// Update merges changed attributes. A status change must follow the
// transition table; anything else is rejected as a validation failure.
func (s *QuoteService) Update(ctx context.Context, id string, merge func(quote.Quote) quote.Quote) (quote.Quote, error) {
	var zero quote.Quote
	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	next := merge(current)
	if !quote.ValidTransition(current.Status, next.Status) {
		return zero, apperr.Validation([]apperr.Violation{{
			Field:  "body.status",
			Reason: fmt.Sprintf("cannot transition from %s to %s", current.Status, next.Status),
		}})
	}
	return s.Resource.Update(ctx, id, func(quote.Quote) quote.Quote { return next })
}

// Total sums the quote's live line amounts in cents.
func (s *QuoteService) Total(ctx context.Context, id string) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	services, err := s.services.ListJoins(ctx, id, assoc.Page{})
	if err != nil {
		return 0, err
	}
	materials, err := s.materials.ListJoins(ctx, id, assoc.Page{})
	if err != nil {
		return 0, err
	}
	return quote.Total(services, materials), nil
}

// ServiceLines exposes the quote→service association flow.
func (s *QuoteService) ServiceLines() *assoc.Flow[quote.Quote, quote.ServiceLine, quote.LinePatch] {
	return s.services
}

// MaterialLines exposes the quote→material association flow.
func (s *QuoteService) MaterialLines() *assoc.Flow[quote.Quote, quote.MaterialLine, quote.LinePatch] {
	return s.materials
}

// deriveCode builds a human-facing quote code from the record id.
func deriveCode(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "Q-" + strings.ToUpper(compact)
}
