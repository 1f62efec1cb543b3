// Package page holds the server-side representation of a bound page and the
// feedback operations performed on it.
//
// A Document wraps a parsed HTML tree. All mutation goes through Document
// methods, which report each change to an optional Recorder so a transport
// layer can mirror the mutations to the browser.
package page

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// LoadingClass marks a region with an in-flight request.
	LoadingClass = "liven-loading"

	// ToastContainerID is the id of the notification container element.
	ToastContainerID = "liven-toasts"

	// ToastContainerSelector addresses the notification container.
	ToastContainerSelector = "#" + ToastContainerID
)

// Op identifies a kind of DOM mutation.
type Op uint8

const (
	OpSetHTML Op = iota // replace inner HTML
	OpAppend            // append HTML to children
	OpAddClass
	OpRemoveClass
	OpSetAttr
	OpRemoveAttr
)

// String returns the wire name of the operation.
func (o Op) String() string {
	switch o {
	case OpSetHTML:
		return "set-html"
	case OpAppend:
		return "append"
	case OpAddClass:
		return "add-class"
	case OpRemoveClass:
		return "remove-class"
	case OpSetAttr:
		return "set-attr"
	case OpRemoveAttr:
		return "remove-attr"
	default:
		return "unknown"
	}
}

// Mutation describes one DOM change applied to the document.
type Mutation struct {
	Op       Op
	Selector string
	Name     string // class or attribute name
	Value    string // attribute value or HTML fragment
}

// Recorder observes mutations in the order they are applied.
type Recorder interface {
	Record(m Mutation)
}

// Document is the server-side page tree.
//
// It is not safe for concurrent use; a bound page is owned by a single
// event-processing goroutine.
type Document struct {
	doc      *goquery.Document
	recorder Recorder
}

// NewDocument parses server-rendered HTML into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("page: parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// SetRecorder installs the mutation observer. A nil recorder disables
// observation.
func (d *Document) SetRecorder(r Recorder) {
	d.recorder = r
}

// Selection returns the elements matching a CSS selector.
func (d *Document) Selection(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	html, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("page: render document: %w", err)
	}
	return html, nil
}

// RegionHTML returns the inner HTML of the first element matching selector.
func (d *Document) RegionHTML(selector string) (string, error) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("page: no element matches %q", selector)
	}
	html, err := sel.First().Html()
	if err != nil {
		return "", fmt.Errorf("page: render region %q: %w", selector, err)
	}
	return html, nil
}

// SetRegionHTML replaces the inner HTML of the elements matching selector.
// An empty html clears the region. Missing regions are a no-op.
func (d *Document) SetRegionHTML(selector, html string) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return
	}
	sel.SetHtml(html)
	d.record(Mutation{Op: OpSetHTML, Selector: selector, Value: html})
}

func (d *Document) record(m Mutation) {
	if d.recorder != nil {
		d.recorder.Record(m)
	}
}
