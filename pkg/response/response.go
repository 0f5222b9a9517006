// Package response provides helpers for sending JSend-formatted HTTP responses.
// See: https://github.com/omniti-labs/jsend
package response

import (
	"encoding/json"
	"net/http"
)

// JSend status constants
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response represents a JSend response structure
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Success sends a JSend success response with status 200 OK.
func Success(w http.ResponseWriter, data any) {
	SuccessWithStatus(w, http.StatusOK, data)
}

// SuccessWithStatus sends a JSend success response with a custom status code.
func SuccessWithStatus(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, Response{Status: StatusSuccess, Data: data})
}

// Created sends a JSend success response with status 201 Created.
func Created(w http.ResponseWriter, data any) {
	SuccessWithStatus(w, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail sends a JSend fail response for client errors (4xx).
// The data parameter should describe what was wrong with the request.
//
// Example output: {"status": "fail", "data": {"address": "Pickup address is required"}}
func Fail(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, Response{Status: StatusFail, Data: data})
}

// BadRequest sends a JSend fail response with status 400 Bad Request.
func BadRequest(w http.ResponseWriter, data any) {
	Fail(w, http.StatusBadRequest, data)
}

// NotFound sends a JSend fail response with status 404 Not Found.
func NotFound(w http.ResponseWriter, data any) {
	Fail(w, http.StatusNotFound, data)
}

// Unauthorized sends a JSend fail response with status 401 Unauthorized.
func Unauthorized(w http.ResponseWriter, data any) {
	Fail(w, http.StatusUnauthorized, data)
}

// Forbidden sends a JSend fail response with status 403 Forbidden.
func Forbidden(w http.ResponseWriter, data any) {
	Fail(w, http.StatusForbidden, data)
}

// Conflict sends a JSend fail response with status 409 Conflict.
// Used when a request conflicts with current state, e.g. transitioning
// a job out of a terminal status.
func Conflict(w http.ResponseWriter, data any) {
	Fail(w, http.StatusConflict, data)
}

// UnprocessableEntity sends a JSend fail response with status 422.
func UnprocessableEntity(w http.ResponseWriter, data any) {
	Fail(w, http.StatusUnprocessableEntity, data)
}

// Error sends a JSend error response for server errors (5xx).
//
// Example output: {"status": "error", "message": "route service unavailable", "code": 503}
func Error(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, Response{Status: StatusError, Message: message, Code: statusCode})
}

// InternalError sends a JSend error response with status 500.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// ServiceUnavailable sends a JSend error response with status 503.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, message)
}

// ValidationError creates single-field validation error data.
func ValidationError(field, message string) map[string]string {
	return map[string]string{field: message}
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"status":"error","message":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}
