// Package envelope defines the JSON response contract shared by every
// Liven-handled request.
//
// Servers answer AJAX-handled requests with a single envelope shape:
//
//	{"success": bool, "message"?: string, "data"?: string, "html"?: string}
//
// Parse validates a response body against that shape. A body that is not a
// JSON object, or whose "success" member is missing or not a boolean, is
// malformed no matter what HTTP status accompanied it.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a response body does not satisfy the
// envelope contract.
var ErrMalformed = errors.New("envelope: malformed response body")

// Envelope is the decoded server response.
//
// Success reports the business-level outcome of the exchange. Message, Data
// and HTML are optional: absent members decode to the empty string.
type Envelope struct {
	Success bool
	Message string
	Data    string
	HTML    string
}

// Parse decodes and validates a response body.
//
// All failures wrap ErrMalformed: non-JSON input, a non-object top-level
// value, trailing data after the object, a missing or non-boolean "success"
// member, or an optional member carrying a non-string value.
func Parse(body []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after envelope", ErrMalformed)
	}

	successRaw, ok := raw["success"]
	if !ok {
		return nil, fmt.Errorf("%w: missing success field", ErrMalformed)
	}

	env := &Envelope{}
	if err := json.Unmarshal(successRaw, &env.Success); err != nil {
		return nil, fmt.Errorf("%w: success is not a boolean", ErrMalformed)
	}

	for name, dst := range map[string]*string{
		"message": &env.Message,
		"data":    &env.Data,
		"html":    &env.HTML,
	} {
		fieldRaw, ok := raw[name]
		if !ok || bytes.Equal(fieldRaw, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(fieldRaw, dst); err != nil {
			return nil, fmt.Errorf("%w: %s is not a string", ErrMalformed, name)
		}
	}

	return env, nil
}
