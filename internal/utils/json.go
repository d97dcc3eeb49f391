package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON strictly decodes a message payload. An empty payload leaves dst
// untouched.
func DecodeJSON(data []byte, dst interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
