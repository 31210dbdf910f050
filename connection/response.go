package connection

import "net/http"

// Response is a fully read controller response.
type Response struct {
	statusCode int
	header     http.Header
	body       []byte
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}
