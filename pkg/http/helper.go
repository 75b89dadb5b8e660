package http

import (
	"strconv"
	"strings"

	apperrors "tablebot/pkg/errors"
)

// ParseID parses a positive numeric path parameter.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.InvalidInput("id cannot be empty", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid id parameter: "+raw, nil)
	}
	return id, nil
}
