package server

import (
	"fmt"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
)

// Error is the JSON body of every failed API call
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Newf creates a new error with the given code and formatted message
func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error codes
const (
	CodeBadRequest = http.StatusBadRequest
	CodeNotFound   = http.StatusNotFound
	CodeBadGateway = http.StatusBadGateway
)

func writeError(resp *restful.Response, err *Error) {
	if werr := resp.WriteHeaderAndJson(err.Code, err, restful.MIME_JSON); werr != nil {
		log.Warn("Failed to write error response %d: %v", err.Code, werr)
	}
}
