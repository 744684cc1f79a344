package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Failure(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"success", Status{StatusCode: 200, Raw: []byte(`{"user":{}}`)}, ""},
		{"error field wins", Status{StatusCode: 400, Error: "Email taken", Message: "ignored"}, "Email taken"},
		{"error field on 2xx", Status{StatusCode: 200, Error: "odd"}, "odd"},
		{"message", Status{StatusCode: 500, Message: "try later"}, "try later"},
		{"bare string body", Status{StatusCode: 401, Raw: []byte(`"Please sign-in"`)}, "Please sign-in"},
		{"other json body", Status{StatusCode: 422, Raw: []byte(`[{"msg":"x"}]`)}, `[{"msg":"x"}]`},
		{"no body", Status{StatusCode: 502}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Failure())
		})
	}
}
