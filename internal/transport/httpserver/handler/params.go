package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var errInvalidPoints = errors.New("points must be a positive integer")

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parsePoints accepts a JSON integer or a string holding one. Absent and null
// yield nil so the service reports the missing field. Range checks are left
// to the service.
func parsePoints(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errInvalidPoints
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		return nil, errInvalidPoints
	}
	return &value, nil
}
