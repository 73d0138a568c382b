package httpapi

import "net/http"

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	list, err := s.clients.List(r.Context())
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	out := make([]clientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) postClient(w http.ResponseWriter, r *http.Request) {
	req, _ := r.Context().Value(ctxKeyPostClient).(clientRequest)
	c, err := s.clients.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toClientResponse(c))
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(ctxKeyClientID).(int)
	c, err := s.clients.Get(r.Context(), id)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toClientResponse(c))
}

// putClient replaces name and email; the id is preserved.
func (s *Server) putClient(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(ctxKeyClientID).(int)
	req, _ := r.Context().Value(ctxKeyPutClient).(clientRequest)
	c, err := s.clients.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toClientResponse(c))
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(ctxKeyClientID).(int)
	if err := s.clients.Delete(r.Context(), id); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, messageResponse{Message: "client deleted"})
}
