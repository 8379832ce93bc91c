package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erazemk/najdeno/internal/model"
)

func itemFilter(status, location string) model.ItemFilter {
	return model.ItemFilter{Status: model.ItemStatus(status), Location: location}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantAuth string
	}{
		{"error field", &Error{Status: 400, ErrorText: "Name is required"}, "Name is required", "Name is required"},
		{"message only", &Error{Status: 401, MessageText: "Bad password"}, "fallback", "Bad password"},
		{"both", &Error{Status: 409, ErrorText: "conflict", MessageText: "Username taken"}, "conflict", "Username taken"},
		{"empty body", &Error{Status: 500}, "fallback", "fallback"},
		{"wrapped", fmt.Errorf("outer: %w", &Error{Status: 404, ErrorText: "Item not found"}), "Item not found", "Item not found"},
		{"not an api error", errors.New("boom"), "fallback", "fallback"},
		{"nil", nil, "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err, "fallback"))
			assert.Equal(t, tt.wantAuth, AuthMessage(tt.err, "fallback"))
		})
	}
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		body        string
		wantError   string
		wantMessage string
	}{
		{`{"error":"Item not found"}`, "Item not found", ""},
		{`{"message":"Invalid credentials"}`, "", "Invalid credentials"},
		{`{"msg":"Token has expired"}`, "", "Token has expired"},
		{`{"error":{"code":3}}`, "", ""},
		{`{"error":"Bad \"name\"","msg":"ignored?","message":"wins"}`, `Bad "name"`, "wins"},
		{`["error"]`, "", ""},
		{`<html>Bad Gateway</html>`, "", ""},
		{``, "", ""},
	}

	for _, tt := range tests {
		resp := &http.Response{StatusCode: 400, Body: io.NopCloser(strings.NewReader(tt.body))}
		err := decodeError(http.MethodGet, "/items", resp)

		var apiErr *Error
		if !assert.True(t, errors.As(err, &apiErr), tt.body) {
			continue
		}
		assert.Equal(t, 400, apiErr.Status, tt.body)
		assert.Equal(t, tt.wantError, apiErr.ErrorText, tt.body)
		assert.Equal(t, tt.wantMessage, apiErr.MessageText, tt.body)
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "GET /items: 404: Item not found",
		(&Error{Method: "GET", Path: "/items", Status: 404, ErrorText: "Item not found"}).Error())
	assert.Equal(t, "DELETE /users/3: 500 Internal Server Error",
		(&Error{Method: "DELETE", Path: "/users/3", Status: 500}).Error())
	assert.Equal(t, "GET /me: dial failed",
		(&Error{Method: "GET", Path: "/me", Err: errors.New("dial failed")}).Error())
}

func TestAuthResponseBearerToken(t *testing.T) {
	assert.Equal(t, "T1", (&AuthResponse{Token: "T1", AccessToken: "A1"}).BearerToken())
	assert.Equal(t, "A1", (&AuthResponse{AccessToken: "A1"}).BearerToken())
	assert.Empty(t, (*AuthResponse)(nil).BearerToken())
}
