package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := Get()

	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		want   []string
	}{
		{name: "room creation is admin only", path: "/v1/rooms/", method: http.MethodPost, want: []string{"admin"}},
		{name: "trailing slash is ignored", path: "/v1/rooms", method: http.MethodPost, want: []string{"admin"}},
		{name: "room deletion is admin only", path: "/v1/rooms/{id}", method: http.MethodDelete, want: []string{"admin"}},
		{name: "check in is open to both roles", path: "/v1/bookings/{id}/check-in", method: http.MethodPost, want: []string{"admin", "manager"}},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.FindPermissions(tt.path, tt.method).Permissions)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	assert.Nil(t, parse([]byte("{")))
}
