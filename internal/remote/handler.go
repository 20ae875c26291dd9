package remote

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Matcher is the matching engine served by Handler
type Matcher interface {
	Match(symbols []string) types.MatchResult
}

// NewHandler serves POST /api/reactions/find from m. A match is answered
// with the reaction object, a miss with null.
func NewHandler(m Matcher) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(FindPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req FindRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResponseBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res := m.Match(req.Reactants)
		writeJSON(w, res.Reaction)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("remote: write response: %v", err)
	}
}
