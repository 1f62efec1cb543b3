package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/middleware"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsCountsDispatches(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := middleware.Metrics(middleware.WithRegistry(reg))

	ok := mw(func(ctx context.Context, ev binder.Event) error { return nil })
	failing := mw(func(ctx context.Context, ev binder.Event) error { return errors.New("boom") })

	ev := binder.Event{Kind: binder.KindClick, Selector: "#refresh"}
	if err := ok(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ok(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := failing(context.Background(), ev); err == nil {
		t.Fatal("expected error passthrough")
	}

	got := counterValue(t, reg, "liven_events_total", map[string]string{"kind": "click", "status": "ok"})
	if got != 2 {
		t.Errorf("expected 2 ok dispatches, got %v", got)
	}
	got = counterValue(t, reg, "liven_events_total", map[string]string{"kind": "click", "status": "error"})
	if got != 1 {
		t.Errorf("expected 1 failed dispatch, got %v", got)
	}
}

func TestMetricsNamespaceOption(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := middleware.Metrics(
		middleware.WithRegistry(reg),
		middleware.WithNamespace("demo"),
		middleware.WithSubsystem("ui"),
	)

	h := mw(func(ctx context.Context, ev binder.Event) error { return nil })
	if err := h(context.Background(), binder.Event{Kind: binder.KindSubmit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := counterValue(t, reg, "demo_ui_events_total", map[string]string{"kind": "submit", "status": "ok"})
	if got != 1 {
		t.Errorf("expected namespaced counter incremented, got %v", got)
	}
}
