package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response body.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
