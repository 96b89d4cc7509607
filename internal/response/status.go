package response

// StatusCode represents HTTP status codes
type StatusCode int

// The server only ever answers with these three.
const (
	StatusOK       StatusCode = 200
	StatusCreated  StatusCode = 201
	StatusNotFound StatusCode = 404
)

// statusText maps status codes to reason phrases
var statusText = map[StatusCode]string{
	StatusOK:       "Ok",
	StatusCreated:  "Created",
	StatusNotFound: "Not Found",
}

// StatusText returns the reason phrase for a status code
func StatusText(code StatusCode) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown Status"
}

// IsSuccess returns true for 2xx status codes
func (code StatusCode) IsSuccess() bool {
	return code >= 200 && code < 300
}

// IsClientError returns true for 4xx status codes
func (code StatusCode) IsClientError() bool {
	return code >= 400 && code < 500
}
