package handler

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies; player and game payloads are tiny
const maxBodyBytes = 64 << 10

// decodeBody reads a size-limited JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
