package httpapi

import (
	"encoding/json"
	"net/http"
)

// serveSSE runs the send loop for one subscriber: every hub tick
// re-reads a snapshot via load and writes it as one SSE event. The
// first event fires immediately so the client renders current state
// without waiting for a change.
func (s *Server) serveSSE(w http.ResponseWriter, r *http.Request, collection string, load func() (any, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.hub.Subscribe(r.Context(), collection)
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			snapshot, err := load()
			if err != nil {
				s.logger.Error(r.Context(), "failed to load watch snapshot", "collection", collection, "error", err)
				return
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				s.logger.Error(r.Context(), "failed to marshal watch snapshot", "collection", collection, "error", err)
				return
			}
			if _, err := w.Write([]byte("event: snapshot\ndata: " + string(data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// watchTasksHandler streams task snapshots: the admin sees every task,
// a member only their own.
func (s *Server) watchTasksHandler(w http.ResponseWriter, r *http.Request) {
	profile := profileFromRequest(r)

	load := func() (any, error) {
		if profile.IsAdmin {
			return s.tasks.ListAll(r.Context())
		}
		return s.tasks.ListMine(r.Context(), profile.ID)
	}
	s.serveSSE(w, r, "tasks", load)
}

// watchUsersHandler streams the member roster to the admin dashboard.
func (s *Server) watchUsersHandler(w http.ResponseWriter, r *http.Request) {
	load := func() (any, error) {
		return s.users.List(r.Context())
	}
	s.serveSSE(w, r, "users", load)
}
