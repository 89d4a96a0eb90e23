package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the body every backend endpoint answers with. The
// envelope's statusCode, not the HTTP status line, is the success
// predicate: 200 and nothing else.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

func (e Envelope) OK() bool {
	return e.StatusCode == 200
}

func (e Envelope) Decode(val interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("response carried no data")
	}
	if err := json.Unmarshal(e.Data, val); err != nil {
		return fmt.Errorf("cannot decode response data: %w", err)
	}
	return nil
}
