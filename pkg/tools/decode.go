package tools

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// sseDataPrefix is the framing the map service uses on some endpoints: the
// whole JSON payload sent as a single "data:" event.
const sseDataPrefix = "data:"

// Document is a decoded upstream response.
type Document struct {
	root gjson.Result
}

// Decode parses body as JSON, first stripping a single "data:" frame if
// present. A body that is not JSON either way yields a *DecodeError holding
// the body as received.
func Decode(body []byte) (Document, error) {
	payload := bytes.TrimSpace(body)
	if bytes.HasPrefix(payload, []byte(sseDataPrefix)) {
		payload = bytes.TrimSpace(payload[len(sseDataPrefix):])
	}

	if len(payload) == 0 || !gjson.ValidBytes(payload) {
		return Document{}, &DecodeError{Raw: string(body), Err: ErrMalformedPayload}
	}
	return Document{root: gjson.ParseBytes(payload)}, nil
}

// Raw returns the JSON text of the document.
func (d Document) Raw() string {
	return d.root.Raw
}

// Get returns the value at a gjson path, e.g. "meta.total_count".
func (d Document) Get(path string) gjson.Result {
	return d.root.Get(path)
}

// Entries returns the result entries under "documents". A missing or
// non-array field yields nil.
func (d Document) Entries() []gjson.Result {
	docs := d.root.Get("documents")
	if !docs.IsArray() {
		return nil
	}
	return docs.Array()
}
