package middleware_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/middleware"
)

func TestOTelPassesThroughResult(t *testing.T) {
	mw := middleware.OTel()

	sentinel := errors.New("dispatch failed")
	h := mw(func(ctx context.Context, ev binder.Event) error { return sentinel })

	err := h(context.Background(), binder.Event{Kind: binder.KindClick, Selector: "#x"})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected error passed through, got %v", err)
	}

	ok := mw(func(ctx context.Context, ev binder.Event) error { return nil })
	if err := ok(context.Background(), binder.Event{Kind: binder.KindSubmit}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOTelFilterSkipsExtractor(t *testing.T) {
	extracted := false
	mw := middleware.OTel(
		middleware.WithTracerName("test"),
		middleware.WithEventFilter(func(ev binder.Event) bool { return ev.Kind == binder.KindSubmit }),
		middleware.WithAttributeExtractor(func(ev binder.Event) []attribute.KeyValue {
			extracted = true
			return nil
		}),
	)

	h := mw(func(ctx context.Context, ev binder.Event) error { return nil })

	if err := h(context.Background(), binder.Event{Kind: binder.KindClick}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extracted {
		t.Error("expected extractor skipped for filtered event")
	}

	if err := h(context.Background(), binder.Event{Kind: binder.KindSubmit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extracted {
		t.Error("expected extractor called for traced event")
	}
}
