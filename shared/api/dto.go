package api

import "encoding/json"

// Status is embedded in every response DTO. Message and Error come from the
// JSON body; StatusCode is filled in by the client from the HTTP response.
type Status struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	// Raw is the response body as received.
	Raw json.RawMessage `json:"-"`
}

func (s *Status) SetStatusCode(code int) {
	s.StatusCode = code
}

func (s *Status) SetRaw(body []byte) {
	s.Raw = body
}

// OK reports a 2xx response that carries no error field.
func (s *Status) OK() bool {
	return s.StatusCode >= 200 && s.StatusCode < 300 && s.Error == ""
}

// Failure returns the server-provided reason of an unsuccessful response.
// Bodies that fit no known shape are returned as received, a bare JSON
// string unquoted.
func (s *Status) Failure() string {
	if s.Error != "" {
		return s.Error
	}
	if s.OK() {
		return ""
	}
	if s.Message != "" {
		return s.Message
	}
	var text string
	if json.Unmarshal(s.Raw, &text) == nil {
		return text
	}
	return string(s.Raw)
}

type MessageResponse struct {
	Status
}
