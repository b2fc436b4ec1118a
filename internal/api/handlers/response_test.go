package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "соревнование не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":404,"message":"соревнование не найдено"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Kari"}`))
		require.NoError(t, DecodeJSON(r, &b))
		assert.Equal(t, "Kari", b.Name)
	})

	for name, payload := range map[string]string{
		"unknown field": `{"name":"Kari","age":3}`,
		"trailing data": `{"name":"Kari"}{"name":"Ola"}`,
		"malformed":     `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			var b body
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
			assert.Error(t, DecodeJSON(r, &b))
		})
	}
}
