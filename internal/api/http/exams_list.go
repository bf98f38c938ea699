package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-grades/internal/exam"
)

// GET /exams?q=...&limit=50&offset=0
func ListExamsHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		list, err := store.ListTemplates(r.Context(), exam.ListOpts{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			storeError(w, log, "list exams", err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
