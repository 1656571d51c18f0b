package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// writeError writes the user message for err as JSON.
func writeError(w http.ResponseWriter, status int, err error) {
	msg := core.MapError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   msg.Message,
		"message": msg.Message,
		"action":  msg.Action,
		"code":    msg.Code,
	})
}
