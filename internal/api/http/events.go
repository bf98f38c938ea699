package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// GET /events?after=0&limit=100
//
// Pages through the event log in seq order. Clients resume with the last
// seq they saw.
func ListEventsHandler(events EventLog, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var after int64
		if s := r.URL.Query().Get("after"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil || v < 0 {
				http.Error(w, "bad after", http.StatusBadRequest)
				return
			}
			after = v
		}
		list, err := events.List(r.Context(), after, parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			log.Error("list events failed", zap.Error(err))
			http.Error(w, "list events: internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
