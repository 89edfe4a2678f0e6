package client

import "encoding/json"

// classify maps a gateway response onto the notification id or an
// ApiError. Success bodies are never parsed. A malformed error body
// degrades to the unknown reason instead of failing the classification.
func classify(id string, status int, body []byte) (string, error) {
	if status >= 200 && status < 300 {
		return id, nil
	}
	apiErr := &ApiError{Status: status, Reason: unknownReason}
	var resp struct {
		Reason    string `json:"reason"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Reason != "" {
		apiErr.Reason = resp.Reason
		apiErr.Timestamp = resp.Timestamp
	}
	return "", apiErr
}
