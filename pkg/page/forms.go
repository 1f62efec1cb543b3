package page

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// SerializeForm flattens the named fields of the first form matching
// selector into a map. Later duplicate names overwrite earlier ones.
//
// Buttons and file inputs are skipped, as are checkboxes and radios without
// the checked attribute, matching standard form serialization.
func (d *Document) SerializeForm(selector string) map[string]string {
	values := make(map[string]string)

	form := d.doc.Find(selector).First()
	if form.Length() == 0 {
		return values
	}

	form.Find("input[name], select[name], textarea[name]").Each(func(_ int, field *goquery.Selection) {
		name := field.AttrOr("name", "")
		if name == "" {
			return
		}

		if field.Is("textarea") {
			values[name] = field.Text()
			return
		}
		if field.Is("select") {
			values[name] = selectValue(field)
			return
		}

		switch field.AttrOr("type", "text") {
		case "submit", "button", "reset", "file", "image":
			return
		case "checkbox", "radio":
			if _, checked := field.Attr("checked"); !checked {
				return
			}
			values[name] = field.AttrOr("value", "on")
		default:
			values[name] = field.AttrOr("value", "")
		}
	})

	return values
}

// selectValue resolves a select element the way a browser submits it: the
// last selected option wins, and an unselected single select submits its
// first option.
func selectValue(sel *goquery.Selection) string {
	selected := sel.Find("option[selected]")
	if selected.Length() > 0 {
		return optionValue(selected.Last())
	}
	first := sel.Find("option").First()
	if first.Length() == 0 {
		return ""
	}
	return optionValue(first)
}

func optionValue(option *goquery.Selection) string {
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return option.Text()
}

// ApplyFormValues writes client-reported field values into the form before
// serialization. Field state lives in the browser; live submit events carry
// the current values, and this synchronizes the server-side tree with them.
//
// The write is state synchronization, not a page change, so it is not
// reported to the recorder.
func (d *Document) ApplyFormValues(selector string, values map[string]string) {
	form := d.doc.Find(selector).First()
	if form.Length() == 0 || len(values) == 0 {
		return
	}

	for name, value := range values {
		fields := form.Find(fmt.Sprintf("[name=%q]", name))
		fields.Each(func(_ int, field *goquery.Selection) {
			switch {
			case field.Is("textarea"):
				field.SetText(value)
			case field.Is("select"):
				field.Find("option").Each(func(_ int, option *goquery.Selection) {
					if optionValue(option) == value {
						option.SetAttr("selected", "selected")
					} else {
						option.RemoveAttr("selected")
					}
				})
			default:
				switch field.AttrOr("type", "text") {
				case "checkbox", "radio":
					if field.AttrOr("value", "on") == value {
						field.SetAttr("checked", "checked")
					} else {
						field.RemoveAttr("checked")
					}
				default:
					field.SetAttr("value", value)
				}
			}
		})
	}
}
