package utils

import (
	"log"
	"strings"
)

// LogEvent prints one business event line tagged with module, action and request id.
// Keep messages to ids and amounts; never log guest contact details or tokens.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	message = strings.Join(strings.Fields(message), " ")
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
