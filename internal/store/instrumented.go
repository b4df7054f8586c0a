package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrumented counts mutations of an inner repository.
type Instrumented[T Record[T]] struct {
	inner    Repository[T]
	resource string
	counter  metric.Int64Counter
}

// NewInstrumented wraps inner. A nil meter disables counting.
func NewInstrumented[T Record[T]](inner Repository[T], resource string, meter metric.Meter) *Instrumented[T] {
	r := &Instrumented[T]{inner: inner, resource: resource}
	if meter != nil {
		counter, err := meter.Int64Counter("ipoadmin.store.mutations",
			metric.WithDescription("Record mutations by resource, operation and result"),
			metric.WithUnit("{mutation}"))
		if err == nil {
			r.counter = counter
		}
	}
	return r
}

func (r *Instrumented[T]) record(ctx context.Context, op string, err error) {
	if r.counter == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", r.resource),
		attribute.String("operation", op),
		attribute.String("result", result),
	))
}

func (r *Instrumented[T]) List(ctx context.Context) ([]T, error) {
	return r.inner.List(ctx)
}

func (r *Instrumented[T]) Get(ctx context.Context, id string) (T, error) {
	return r.inner.Get(ctx, id)
}

func (r *Instrumented[T]) Create(ctx context.Context, rec T) (T, error) {
	out, err := r.inner.Create(ctx, rec)
	r.record(ctx, "create", err)
	return out, err
}

func (r *Instrumented[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	out, err := r.inner.Update(ctx, id, rec)
	r.record(ctx, "update", err)
	return out, err
}

func (r *Instrumented[T]) Delete(ctx context.Context, id string) error {
	err := r.inner.Delete(ctx, id)
	r.record(ctx, "delete", err)
	return err
}
