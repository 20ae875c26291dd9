package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerFind(t *testing.T) {
	h := NewHandler(reaction.Default())

	rec := serve(h, http.MethodPost, FindPath, `{"reactants":["O","H"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var r types.Reaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, "water-formation", r.ID)
	assert.Equal(t, []string{"H2O"}, r.Products)
}

func TestHandlerMiss(t *testing.T) {
	h := NewHandler(reaction.Default())

	rec := serve(h, http.MethodPost, FindPath, `{"reactants":["Fe","Cu"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestHandlerRejects(t *testing.T) {
	h := NewHandler(reaction.Default())

	rec := serve(h, http.MethodGet, FindPath, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))

	rec = serve(h, http.MethodPost, FindPath, "{oops")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerHealth(t *testing.T) {
	rec := serve(NewHandler(reaction.Default()), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
