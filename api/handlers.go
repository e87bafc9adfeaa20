package api

import (
	"encoding/json"
	"net/http"

	"massnet.org/hashlookup/logging"
)

type sha256Request struct {
	Message *string `json:"message"`
}

type decryptRequest struct {
	Hash *string `json:"hash"`
}

type digestResponse struct {
	Message string `json:"message"`
	Sha256  string `json:"sha256"`
}

type errorResponseBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.CPrint(logging.WARN, "fail to write response", logging.LogFormat{"err": err})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponseBody{Error: msg})
}

// decodeBody reads a JSON request. A missing or malformed body leaves v
// untouched, which the handlers treat as a missing field.
func decodeBody(req *http.Request, v interface{}) {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		logging.CPrint(logging.DEBUG, "fail to decode request", logging.LogFormat{"path": req.URL.Path, "err": err})
	}
}

func allowPost(w http.ResponseWriter, req *http.Request) bool {
	if req.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, msgMethod)
	return false
}

func (s *Server) handleSha256(w http.ResponseWriter, req *http.Request) {
	if !allowPost(w, req) {
		return
	}
	var body sha256Request
	decodeBody(req, &body)

	var message string
	if body.Message != nil {
		message = *body.Message
	}
	digest, err := s.lookup.Digest(message)
	if err != nil {
		status, msg := errorResponse(err, msgNoMessage)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, digestResponse{Message: message, Sha256: digest})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, req *http.Request) {
	if !allowPost(w, req) {
		return
	}
	var body decryptRequest
	decodeBody(req, &body)

	var target string
	if body.Hash != nil {
		target = *body.Hash
	}
	word, err := s.lookup.Decrypt(req.Context(), target)
	if err != nil {
		status, msg := errorResponse(err, msgNoHash)
		logging.CPrint(logging.DEBUG, "decrypt request failed", logging.LogFormat{"hash": target, "status": status, "err": err})
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, digestResponse{Message: word, Sha256: target})
}
