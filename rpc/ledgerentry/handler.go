// Package ledgerentry resolves ledger_entry requests: it picks the single
// request shape present, validates it, derives the object's key, reads the
// object from a ledger snapshot and renders the response document.
package ledgerentry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ledgerd/codec"
	"ledgerd/core/keylet"
	"ledgerd/ledger"
	"ledgerd/observability"
)

var errNoResolver = errors.New("ledgerentry: no ledger resolver configured")

// Handler answers ledger_entry requests against snapshots supplied by a
// resolver. It holds no mutable state and may be shared between goroutines.
type Handler struct {
	resolver ledger.Resolver
	deriver  KeyDeriver
	encoder  Encoder
	logger   *slog.Logger
	metrics  *observability.LedgerEntryMetrics
	tracer   trace.Tracer
	clock    func() time.Time
}

// Option customises a Handler.
type Option func(*Handler)

// WithDeriver replaces the keylet deriver.
func WithDeriver(d KeyDeriver) Option {
	return func(h *Handler) { h.deriver = d }
}

// WithEncoder replaces the binary encoder.
func WithEncoder(enc Encoder) Option {
	return func(h *Handler) { h.encoder = enc }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithMetrics sets the metrics sink. A nil sink disables recording.
func WithMetrics(m *observability.LedgerEntryMetrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler constructs a handler with the production deriver and encoder.
func NewHandler(resolver ledger.Resolver, opts ...Option) *Handler {
	h := &Handler{
		resolver: resolver,
		deriver:  keylet.Deriver{},
		encoder:  codec.Binary{},
		metrics:  observability.LedgerEntry(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("ledgerd/ledgerentry"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle selects the ledger named by the request, then resolves the request
// against it. A ledger selection failure is returned as an error and no
// document is produced.
func (h *Handler) Handle(ctx context.Context, p Params) (*Result, error) {
	start := h.clock()
	shape := Classify(p)
	_, span := h.tracer.Start(ctx, "ledger_entry",
		trace.WithAttributes(attribute.String("ledger_entry.shape", shape.String())))
	defer span.End()

	res, err := h.resolve(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.metrics.Observe(shape.String(), resultLabel(err), h.clock().Sub(start))
		return nil, err
	}
	span.SetAttributes(attribute.Int64("ledger.index", int64(res.LedgerIndex)))
	if res.Failed() {
		span.SetStatus(codes.Error, res.Error)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	h.metrics.Observe(shape.String(), res.Error, h.clock().Sub(start))
	return res, nil
}

func (h *Handler) resolve(p Params) (*Result, error) {
	if h.resolver == nil {
		return nil, errNoResolver
	}
	sel, err := ledger.ParseSelector(p)
	if err != nil {
		return nil, err
	}
	snap, err := h.resolver.Resolve(sel)
	if err != nil {
		return nil, err
	}
	return h.Execute(snap, p)
}

// Execute resolves the request against an already selected snapshot. Shape
// and lookup failures are reported inside the document; only storage or
// encoding failures return an error.
func (h *Handler) Execute(snap ledger.Snapshot, p Params) (*Result, error) {
	res := &Result{Descriptor: snap.Header().Descriptor()}
	out := Dispatch(p, h.deriver)
	if out.Err != nil {
		res.setError(out.Err)
		return res, nil
	}
	if !out.Derived() {
		return res, nil
	}
	entry, err := Lookup(snap, out.Key, out.Expected)
	if err != nil {
		var lookupErr *Error
		if errors.As(err, &lookupErr) {
			res.setError(lookupErr)
			return res, nil
		}
		h.logger.Error("ledger entry read failed",
			slog.String("component", "ledgerentry"),
			slog.String("shape", out.Shape.String()),
			slog.String("index", out.Key.String()),
			slog.Any("error", err))
		return nil, err
	}
	binary := p.Get("binary")
	if err := Project(res, entry, binary.Present() && binary.Bool(), h.encoder); err != nil {
		return nil, err
	}
	return res, nil
}

func resultLabel(err error) string {
	var lookupErr *ledger.LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Code
	}
	return "internal"
}
