package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"name":"pune"}`))
		case "/broken":
			_, _ = w.Write([]byte(`{"name":`))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(2 * time.Second)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.GetJSON(context.Background(), srv.URL+"/ok", &out))
	assert.Equal(t, "pune", out.Name)

	err := client.GetJSON(context.Background(), srv.URL+"/missing", &out)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "gone")

	assert.Error(t, client.GetJSON(context.Background(), srv.URL+"/broken", &out))
}

func TestGetJSON_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(time.Second).GetJSON(ctx, srv.URL, &struct{}{})
	assert.ErrorIs(t, err, context.Canceled)
}
