package aoe4world

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(attempts uint) *Client {
	return &Client{HTTP: &http.Client{Timeout: time.Second}, Attempts: attempts, Delay: time.Millisecond}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "true", r.URL.Query().Get("camelize"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := testClient(3).Get(context.Background(), srv.URL+"/x", url.Values{"camelize": {"true"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.EqualValues(t, 3, calls.Load())
}

func TestGetDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(3).Get(context.Background(), srv.URL+"/missing", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "/missing")
	assert.ErrorContains(t, err, "404")
	var serr *StatusError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	}
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(2).Get(context.Background(), srv.URL, nil)
	assert.ErrorContains(t, err, "503")
	assert.EqualValues(t, 2, calls.Load())
}
