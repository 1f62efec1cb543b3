package page_test

import (
	"strings"
	"testing"

	"github.com/liven-dev/liven/pkg/page"
)

const testPage = `<!DOCTYPE html>
<html>
<body>
  <div id="panel"><p>before</p></div>
  <a id="refresh" href="/api/panel" data-liven-get data-liven-target="#panel">Refresh</a>
</body>
</html>`

func mustDocument(t *testing.T, html string) *page.Document {
	t.Helper()
	doc, err := page.NewDocument(html)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestSetRegionHTML(t *testing.T) {
	doc := mustDocument(t, testPage)

	doc.SetRegionHTML("#panel", "<p>after</p>")

	got, err := doc.RegionHTML("#panel")
	if err != nil {
		t.Fatalf("RegionHTML: %v", err)
	}
	if got != "<p>after</p>" {
		t.Errorf("expected region replaced, got %q", got)
	}
}

func TestSetRegionHTMLClears(t *testing.T) {
	doc := mustDocument(t, testPage)

	doc.SetRegionHTML("#panel", "")

	got, _ := doc.RegionHTML("#panel")
	if got != "" {
		t.Errorf("expected cleared region, got %q", got)
	}
}

func TestSetRegionHTMLMissingTarget(t *testing.T) {
	doc := mustDocument(t, testPage)

	// Must not panic or record anything.
	rec := &recordingRecorder{}
	doc.SetRecorder(rec)
	doc.SetRegionHTML("#nope", "<p>x</p>")

	if len(rec.mutations) != 0 {
		t.Errorf("expected no mutations, got %d", len(rec.mutations))
	}
}

func TestRecorderObservesMutations(t *testing.T) {
	doc := mustDocument(t, testPage)
	rec := &recordingRecorder{}
	doc.SetRecorder(rec)

	doc.ShowLoading("#panel")
	doc.SetRegionHTML("#panel", "<p>new</p>")
	doc.HideLoading("#panel")

	if len(rec.mutations) != 3 {
		t.Fatalf("expected 3 mutations, got %d", len(rec.mutations))
	}

	wantOps := []page.Op{page.OpAddClass, page.OpSetHTML, page.OpRemoveClass}
	for i, want := range wantOps {
		if rec.mutations[i].Op != want {
			t.Errorf("mutation %d: expected op %v, got %v", i, want, rec.mutations[i].Op)
		}
	}
}

func TestHTMLRoundTrip(t *testing.T) {
	doc := mustDocument(t, testPage)

	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, `id="panel"`) {
		t.Errorf("expected rendered document to contain panel, got %q", html)
	}
}

type recordingRecorder struct {
	mutations []page.Mutation
}

func (r *recordingRecorder) Record(m page.Mutation) {
	r.mutations = append(r.mutations, m)
}
