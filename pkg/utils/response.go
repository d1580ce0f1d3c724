package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/pkg/errors"
)

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Meta      interface{} `json:"meta,omitempty"`
}

// ErrorResponse represents an error response with request context
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Code      int         `json:"code"`
	Timestamp string      `json:"timestamp"`
	Request   RequestInfo `json:"request"`
	Details   interface{} `json:"details,omitempty"`
}

// RequestInfo provides context about the failed request
type RequestInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
}

// SendSuccess sends a successful response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendError sends an error response with request context
func SendError(c *gin.Context, statusCode int, message string) {
	sendErrorResponse(c, statusCode, message, "")
}

// SendAppError sends the error envelope for a typed application error.
// Anything that is not an AppError becomes a generic 500.
func SendAppError(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		sendErrorResponse(c, http.StatusInternalServerError, "internal server error", "")
		return
	}
	sendErrorResponse(c, appErr.Code, appErr.Message, appErr.Details)
}

func sendErrorResponse(c *gin.Context, statusCode int, message, details string) {
	errorResponse := ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Request: RequestInfo{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.RawQuery,
		},
	}

	if details != "" {
		errorResponse.Details = details
	}
	if statusCode == http.StatusNotFound {
		suggestions := endpointSuggestions(c.Request.URL.Path)
		if len(suggestions) > 0 {
			errorResponse.Details = map[string]interface{}{
				"suggestions": suggestions,
			}
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendSuccessWithMeta sends a successful response with metadata
func SendSuccessWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// endpointSuggestions provides similar known endpoints for 404 responses
func endpointSuggestions(path string) []string {
	known := map[string][]string{
		"insight": {"/api/v1/insights/key-metrics", "/api/v1/insights/trends", "/api/v1/insights/revenue"},
		"metric":  {"/api/v1/insights/key-metrics", "/metrics"},
		"dataset": {"/api/v1/dataset/info", "/api/v1/dataset/columns", "/api/v1/dataset/preview"},
		"export":  {"/api/v1/export/csv", "/api/v1/export/history"},
		"system":  {"/api/v1/system/status", "/health"},
		"health":  {"/health"},
	}

	pathLower := strings.ToLower(path)
	seen := make(map[string]bool)
	var suggestions []string
	for keyword, endpoints := range known {
		if !strings.Contains(pathLower, keyword) {
			continue
		}
		for _, endpoint := range endpoints {
			if !seen[endpoint] && len(suggestions) < 5 {
				seen[endpoint] = true
				suggestions = append(suggestions, endpoint)
			}
		}
	}
	return suggestions
}
