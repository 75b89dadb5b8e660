package http

import (
	"encoding/json"
	"net/http"

	apperrors "tablebot/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

type ListResponse struct {
	Data       any `json:"data"`
	TotalCount int `json:"total_count"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps err to its AppError status. Errors that are not AppErrors
// are reported as internal without leaking their message.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	resp := ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	}
	if appErr.Code == apperrors.CodeInternal {
		resp.Error = "Internal server error"
		resp.Details = nil
	}
	return WriteJSON(w, appErr.Status(), resp)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteList(w http.ResponseWriter, data any, total int) error {
	return WriteJSON(w, http.StatusOK, ListResponse{
		Data:       data,
		TotalCount: total,
	})
}
