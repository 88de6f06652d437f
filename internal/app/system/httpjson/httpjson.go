// internal/app/system/httpjson/httpjson.go
package httpjson

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies. Signatures on form responses are
// data URLs, so the cap is generous.
const maxBodyBytes = 4 << 20

// Write encodes v as the JSON response with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body into v. It rejects unknown fields so a
// misspelled field fails loudly instead of silently zeroing.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
