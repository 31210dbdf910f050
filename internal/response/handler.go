// Package response decodes controller responses into Go values.
package response

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Payload is a raw controller response.
type Payload interface {
	StatusCode() int
	Body() []byte
}

// Meta is the status block of v1 responses.
type Meta struct {
	RC      string `json:"rc"`
	Message string `json:"msg"`
}

// Envelope is the v1 response wrapper: {"meta": {...}, "data": [...]}.
type Envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// ErrEmptyResponse is returned when a successful response carries no body.
var ErrEmptyResponse = errors.New("empty response from API")

// Check validates the status code of a response, expecting 2xx.
func Check(resp Payload, err error, errorMsg string) error {
	if err != nil {
		return errors.Wrap(err, errorMsg)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return errors.Wrap(errors.Newf("API error: status=%d", resp.StatusCode()), errorMsg)
	}

	return nil
}

// Decode checks the response and unmarshals its whole body into T.
// Used for v2 endpoints returning bare JSON arrays.
//
// Usage:
//
//	resp, err := s.conn.Request(ctx, http.MethodGet, endpoint, nil)
//	data, err := response.Decode[[]map[string]any](resp, err, "failed to list active clients")
func Decode[T any](resp Payload, err error, errorMsg string) (T, error) {
	var out T

	if err := Check(resp, err, errorMsg); err != nil {
		return out, err
	}

	if len(resp.Body()) == 0 {
		return out, errors.Wrap(ErrEmptyResponse, errorMsg)
	}

	// Numbers stay json.Number so 64-bit counters keep their precision
	decoder := json.NewDecoder(bytes.NewReader(resp.Body()))
	decoder.UseNumber()

	if err := decoder.Decode(&out); err != nil {
		return out, errors.Wrapf(err, "%s: decode response", errorMsg)
	}

	return out, nil
}

// DecodeData is like Decode for v1 endpoints: it unwraps the "data" member of
// the envelope and fails when meta.rc reports an error.
func DecodeData[T any](resp Payload, err error, errorMsg string) (T, error) {
	var out T

	envelope, err := Decode[Envelope[T]](resp, err, errorMsg)
	if err != nil {
		return out, err
	}

	if envelope.Meta.RC == "error" {
		return out, errors.Wrap(errors.Newf("API error: %s", envelope.Meta.Message), errorMsg)
	}

	return envelope.Data, nil
}
