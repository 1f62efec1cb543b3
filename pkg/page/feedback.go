package page

import (
	"fmt"
	"html"
)

// Level is the severity of a toast notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Normalize coerces unrecognized levels to info.
func (l Level) Normalize() Level {
	switch l {
	case LevelInfo, LevelSuccess, LevelWarning, LevelError:
		return l
	default:
		return LevelInfo
	}
}

// ShowLoading adds the loading marker class to the elements matching
// selector. Redundant calls are safe.
func (d *Document) ShowLoading(selector string) {
	if selector == "" {
		return
	}
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return
	}
	sel.AddClass(LoadingClass)
	d.record(Mutation{Op: OpAddClass, Selector: selector, Name: LoadingClass})
}

// HideLoading removes the loading marker class. Redundant calls are safe.
func (d *Document) HideLoading(selector string) {
	if selector == "" {
		return
	}
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return
	}
	sel.RemoveClass(LoadingClass)
	d.record(Mutation{Op: OpRemoveClass, Selector: selector, Name: LoadingClass})
}

// EnsureToastContainer creates the notification container at the end of the
// body if the page does not already have one. At most one container ever
// exists.
func (d *Document) EnsureToastContainer() {
	if d.doc.Find(ToastContainerSelector).Length() > 0 {
		return
	}
	container := fmt.Sprintf(`<div id=%q class="liven-toast-container" aria-live="polite"></div>`, ToastContainerID)
	d.doc.Find("body").AppendHtml(container)
	d.record(Mutation{Op: OpAppend, Selector: "body", Value: container})
}

// Toast appends a dismissible notification to the container, creating the
// container first if the page lacks one. Unrecognized levels render as info.
func (d *Document) Toast(level Level, message string) {
	d.EnsureToastContainer()

	level = level.Normalize()
	toast := fmt.Sprintf(
		`<div class="liven-toast liven-toast-%s" role="status"><span class="liven-toast-message">%s</span><button type="button" class="liven-toast-dismiss" aria-label="Dismiss">&times;</button></div>`,
		level, html.EscapeString(message))

	d.doc.Find(ToastContainerSelector).AppendHtml(toast)
	d.record(Mutation{Op: OpAppend, Selector: ToastContainerSelector, Value: toast})
}

// DisableButton sets the disabled attribute on the elements matching
// selector.
func (d *Document) DisableButton(selector string) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return
	}
	sel.SetAttr("disabled", "disabled")
	d.record(Mutation{Op: OpSetAttr, Selector: selector, Name: "disabled", Value: "disabled"})
}

// EnableButton removes the disabled attribute from the elements matching
// selector.
func (d *Document) EnableButton(selector string) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return
	}
	sel.RemoveAttr("disabled")
	d.record(Mutation{Op: OpRemoveAttr, Selector: selector, Name: "disabled"})
}
