package utils

import (
	"encoding/json"
	"net/http"
)

// JSONRespond writes the success envelope shared by every endpoint.
func JSONRespond(w http.ResponseWriter, status int, message string, data any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
