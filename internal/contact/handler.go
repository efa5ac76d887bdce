package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"inno8-site/internal/auth"
)

// Response is the JSON body returned by the contact API.
type Response struct {
	OK     bool             `json:"ok"`
	Error  string           `json:"error,omitempty"`
	Errors map[Field]string `json:"errors,omitempty"`
}

// APIHandler accepts a JSON Submission and forwards it to the backend.
// It answers 200 on success, 422 with the field errors when invalid, 409
// while the same client has a submission outstanding and 502 when the
// backend rejects or cannot be reached.
func APIHandler(s Sender, guard *Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var sub Submission
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&sub); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(Response{Error: "invalid request body"})
			return
		}

		form := FormFrom(sub)
		err := guard.Submit(r.Context(), auth.ClientIP(r), form, s)
		switch {
		case err == nil:
			json.NewEncoder(w).Encode(Response{OK: true})
		case errors.Is(err, ErrInvalid):
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(Response{Error: "validation failed", Errors: form.Errors()})
		case errors.Is(err, ErrInFlight):
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(Response{Error: "a submission is already in progress"})
		default:
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(Response{Error: "failed to send message, please try again later"})
		}
	}
}
