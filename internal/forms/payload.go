package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/harborline/siteforms/pkg/validate"
)

// ErrMalformedBody indicates a request body that could not be parsed as a
// JSON object at all, as opposed to one that parsed but failed validation.
var ErrMalformedBody = errors.New("forms: malformed request body")

// Form bodies are tiny; anything larger is not a legitimate submission.
const maxBodySize = 64 << 10

// payload is the raw untyped form body. Values stay unparsed until a schema
// extracts them, so null and mistyped fields can be told apart from absent
// ones.
type payload map[string]json.RawMessage

func decodePayload(r *http.Request) (payload, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrMalformedBody, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, maxBodySize)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return p, nil
}

// text extracts a trimmed string field. An absent field comes back as the
// empty string; a JSON null or non-string value is an issue even for
// optional fields, because optional means absent or empty, never null.
func (p payload) text(name string) (string, *validate.Issue) {
	raw, ok := p[name]
	if !ok {
		return "", nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", &validate.Issue{Field: name, Message: "must not be null"}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &validate.Issue{Field: name, Message: "must be a string"}
	}
	return strings.TrimSpace(s), nil
}
