package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6"`
}

func TestBind_ReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"123"}`))
	w := httptest.NewRecorder()

	var req sampleRequest
	ok := Bind(w, r, &req)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body validationBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, FieldError{Param: "email", Msg: "Please include a valid email"}, body.Errors[0])
	assert.Equal(t, "password", body.Errors[1].Param)
	assert.Equal(t, "password is invalid", body.Errors[1].Msg)
}

func TestBind_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	w := httptest.NewRecorder()

	var req sampleRequest
	assert.False(t, Bind(w, r, &req))
	assert.Contains(t, w.Body.String(), "invalid json")
}

func TestBind_OK(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com","password":"secret1"}`))
	w := httptest.NewRecorder()

	var req sampleRequest
	require.True(t, Bind(w, r, &req))
	assert.Equal(t, "a@x.com", req.Email)
}

func TestPage(t *testing.T) {
	cases := map[string]int{
		"":         1,
		"?page=3":  3,
		"?page=0":  1,
		"?page=-2": 1,
		"?page=ab": 1,
	}
	for q, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/posts"+q, nil)
		assert.Equal(t, want, Page(r), "query %q", q)
	}
}
