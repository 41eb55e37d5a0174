package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_SendsHeadersAndQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/things", r.URL.Path)
		assert.Equal(t, "dogs", r.URL.Query().Get("term"))
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer ts.Close()

	c, err := New(Options{BaseURL: ts.URL + "/", Header: http.Header{"Authorization": {"Bearer k"}}})
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	err = c.GetJSON(context.Background(), "v3/things", url.Values{"term": {"dogs"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestDoJSON_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c, err := New(Options{BaseURL: ts.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "::not a url"})
	assert.Error(t, err)
}

func TestResolveURL_RelativeWithoutBase(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.Error(t, err)
}
