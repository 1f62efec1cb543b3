// Package binder wires attribute-marked page triggers to request execution
// and user feedback.
//
// A Binder is created once per bound page and lives for the page's lifetime.
// It owns one request executor and drives the page document in response to
// relayed DOM events: navigate triggers (anchors marked data-liven-get) and
// submit triggers (forms marked data-liven-post).
package binder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/liven-dev/liven/pkg/envelope"
	"github.com/liven-dev/liven/pkg/fetch"
	"github.com/liven-dev/liven/pkg/page"
)

// Trigger markup contract.
const (
	// AttrGet marks an anchor as a navigate trigger; the request URL comes
	// from its href.
	AttrGet = "data-liven-get"

	// AttrPost marks a form as a submit trigger; the request URL comes
	// from its action.
	AttrPost = "data-liven-post"

	// AttrTarget names the CSS selector of the region a trigger updates.
	AttrTarget = "data-liven-target"
)

// DefaultErrorMessage is the generic fallback toast shown when a failure
// carries no message of its own.
const DefaultErrorMessage = "Something went wrong. Please try again."

// Config holds binder construction parameters.
type Config struct {
	// Executor performs the trigger-backed requests. Required.
	Executor *fetch.Executor

	// Document is the bound page. Required.
	Document *page.Document

	// Logger receives dispatch diagnostics.
	// Default: slog.Default().
	Logger *slog.Logger

	// Middleware wraps the dispatch handler, outermost first.
	Middleware []Middleware

	// BaseURL resolves relative trigger URLs. Absolute trigger URLs are
	// used as-is. Optional.
	BaseURL *url.URL

	// ErrorMessage is the generic fallback toast text.
	// Default: DefaultErrorMessage.
	ErrorMessage string
}

// Binder dispatches trigger events for one bound page.
//
// Not safe for concurrent use; a bound page is owned by a single
// event-processing goroutine.
type Binder struct {
	config Config
	exec   *fetch.Executor
	doc    *page.Document
	logger *slog.Logger
	handle Handler
}

// Bind constructs the binder for a page document and prepares the page for
// event handling: the notification container is ensured before the first
// event is dispatched.
func Bind(cfg Config) (*Binder, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("binder: config requires an executor")
	}
	if cfg.Document == nil {
		return nil, fmt.Errorf("binder: config requires a document")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = DefaultErrorMessage
	}

	b := &Binder{
		config: cfg,
		exec:   cfg.Executor,
		doc:    cfg.Document,
		logger: cfg.Logger.With("component", "binder"),
	}

	handler := Handler(b.dispatch)
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	b.handle = handler

	b.doc.EnsureToastContainer()
	return b, nil
}

// Document returns the bound page document.
func (b *Binder) Document() *page.Document {
	return b.doc
}

// Dispatch routes one trigger event through the middleware chain.
//
// Terminal request failures are surfaced to the user as an error toast and
// returned to the caller for observability; they never escalate beyond the
// page.
func (b *Binder) Dispatch(ctx context.Context, ev Event) error {
	return b.handle(ctx, ev)
}

func (b *Binder) dispatch(ctx context.Context, ev Event) error {
	sel := b.doc.Selection(ev.Selector).First()
	if sel.Length() == 0 {
		b.logger.Debug("event selector matched nothing", "selector", ev.Selector)
		return fmt.Errorf("%w: %s", ErrNoElement, ev.Selector)
	}

	switch ev.Kind {
	case KindClick:
		return b.navigate(ctx, ev, sel)
	case KindSubmit:
		return b.submit(ctx, ev, sel)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, ev.Kind)
	}
}

// navigate handles an activated navigate trigger: GET the href, replace the
// target region with the envelope's data.
func (b *Binder) navigate(ctx context.Context, ev Event, sel *goquery.Selection) error {
	if _, ok := sel.Attr(AttrGet); !ok {
		return fmt.Errorf("%w: %s has no %s", ErrNotBound, ev.Selector, AttrGet)
	}
	href := sel.AttrOr("href", "")
	if href == "" {
		return fmt.Errorf("%w: %s has no href", ErrNoSource, ev.Selector)
	}
	target := sel.AttrOr(AttrTarget, "")

	b.doc.ShowLoading(target)
	defer b.doc.HideLoading(target)

	res, err := b.exec.Execute(ctx, http.MethodGet, b.resolveURL(href), nil, nil)
	if err != nil {
		b.doc.Toast(page.LevelError, b.config.ErrorMessage)
		return err
	}

	env := res.Envelope
	if !env.Success {
		b.doc.Toast(page.LevelError, b.failureMessage(env))
		return nil
	}

	if target != "" {
		// Absent data clears the region.
		b.doc.SetRegionHTML(target, env.Data)
	}
	if env.Message != "" {
		b.doc.Toast(page.LevelSuccess, env.Message)
	}
	return nil
}

// submit handles an activated submit trigger: POST the serialized form to
// the action, replace the target region with the envelope's html.
func (b *Binder) submit(ctx context.Context, ev Event, sel *goquery.Selection) error {
	if _, ok := sel.Attr(AttrPost); !ok {
		return fmt.Errorf("%w: %s has no %s", ErrNotBound, ev.Selector, AttrPost)
	}
	action := sel.AttrOr("action", "")
	if action == "" {
		return fmt.Errorf("%w: %s has no action", ErrNoSource, ev.Selector)
	}
	target := sel.AttrOr(AttrTarget, "")

	b.doc.ApplyFormValues(ev.Selector, ev.Values)
	payload := b.doc.SerializeForm(ev.Selector)

	control := submitControlSelector(ev.Selector)
	b.doc.ShowLoading(target)
	b.doc.DisableButton(control)
	defer func() {
		b.doc.EnableButton(control)
		b.doc.HideLoading(target)
	}()

	res, err := b.exec.Execute(ctx, http.MethodPost, b.resolveURL(action), payload, nil)
	if err != nil {
		b.doc.Toast(page.LevelError, b.config.ErrorMessage)
		return err
	}

	env := res.Envelope
	if !env.Success {
		b.doc.Toast(page.LevelError, b.failureMessage(env))
		return nil
	}

	if env.HTML != "" && target != "" {
		b.doc.SetRegionHTML(target, env.HTML)
	}
	if env.Message != "" {
		b.doc.Toast(page.LevelSuccess, env.Message)
	}
	return nil
}

// failureMessage prefers the envelope's own message over the generic
// fallback.
func (b *Binder) failureMessage(env *envelope.Envelope) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return b.config.ErrorMessage
}

// resolveURL resolves a trigger URL against the configured base. Unparsable
// URLs pass through untouched; the executor reports them properly.
func (b *Binder) resolveURL(raw string) string {
	if b.config.BaseURL == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return b.config.BaseURL.ResolveReference(ref).String()
}

// submitControlSelector addresses a form's submit controls, including
// buttons that default to type submit.
func submitControlSelector(formSelector string) string {
	return fmt.Sprintf("%[1]s button[type=submit], %[1]s button:not([type]), %[1]s input[type=submit]", formSelector)
}
