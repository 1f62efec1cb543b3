package page_test

import (
	"testing"
)

const contactForm = `<!DOCTYPE html>
<html><body>
<form id="contact" action="/api/contact" data-liven-post data-liven-target="#result">
  <input type="text" name="email" value="a@example.test">
  <input type="hidden" name="kind" value="feedback">
  <input type="checkbox" name="subscribe" checked>
  <input type="checkbox" name="extras">
  <textarea name="body">hello</textarea>
  <select name="topic">
    <option value="sales">Sales</option>
    <option value="support" selected>Support</option>
  </select>
  <button type="submit" name="send" value="yes">Send</button>
</form>
</body></html>`

func TestSerializeForm(t *testing.T) {
	doc := mustDocument(t, contactForm)

	got := doc.SerializeForm("#contact")

	want := map[string]string{
		"email":     "a@example.test",
		"kind":      "feedback",
		"subscribe": "on",
		"body":      "hello",
		"topic":     "support",
	}
	if len(got) != len(want) {
		t.Errorf("expected %d fields, got %d: %v", len(want), len(got), got)
	}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("field %s: expected %q, got %q", name, value, got[name])
		}
	}
	if _, ok := got["send"]; ok {
		t.Error("expected submit button excluded")
	}
	if _, ok := got["extras"]; ok {
		t.Error("expected unchecked checkbox excluded")
	}
}

func TestSerializeFormLastWins(t *testing.T) {
	doc := mustDocument(t, `<form id="f">
	  <input type="text" name="tag" value="a">
	  <input type="text" name="tag" value="b">
	</form>`)

	got := doc.SerializeForm("#f")
	if got["tag"] != "b" {
		t.Errorf(`expected {tag: "b"}, got %v`, got)
	}
}

func TestSerializeFormMissingForm(t *testing.T) {
	doc := mustDocument(t, testPage)

	got := doc.SerializeForm("#no-such-form")
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestApplyFormValues(t *testing.T) {
	doc := mustDocument(t, contactForm)

	doc.ApplyFormValues("#contact", map[string]string{
		"email": "b@example.test",
		"body":  "updated",
		"topic": "sales",
	})

	got := doc.SerializeForm("#contact")
	if got["email"] != "b@example.test" {
		t.Errorf("expected updated email, got %q", got["email"])
	}
	if got["body"] != "updated" {
		t.Errorf("expected updated textarea, got %q", got["body"])
	}
	if got["topic"] != "sales" {
		t.Errorf("expected updated select, got %q", got["topic"])
	}
}

func TestApplyFormValuesNotRecorded(t *testing.T) {
	doc := mustDocument(t, contactForm)
	rec := &recordingRecorder{}
	doc.SetRecorder(rec)

	doc.ApplyFormValues("#contact", map[string]string{"email": "c@example.test"})

	if len(rec.mutations) != 0 {
		t.Errorf("expected value sync unrecorded, got %d mutations", len(rec.mutations))
	}
}

func TestApplyFormValuesCheckbox(t *testing.T) {
	doc := mustDocument(t, contactForm)

	doc.ApplyFormValues("#contact", map[string]string{"extras": "on"})

	got := doc.SerializeForm("#contact")
	if got["extras"] != "on" {
		t.Errorf("expected checkbox checked, got %v", got)
	}
}
