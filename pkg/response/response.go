package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/class-enrollment-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
	Meta  map[string]any   `json:"meta,omitempty"`
}

var statusByCode = map[string]int{
	appErrors.CodeValidation: http.StatusBadRequest,
	appErrors.CodeNotFound:   http.StatusNotFound,
	appErrors.CodeConflict:   http.StatusConflict,
	appErrors.CodeInternal:   http.StatusInternalServerError,
}

// StatusFor maps a domain error code onto an HTTP status.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]any) {
	noStore(c)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// CreatedEmpty responds with HTTP 201 and no body.
func CreatedEmpty(c *gin.Context) {
	noStore(c)
	c.Status(http.StatusCreated)
}

// Error sends an error response converting the error to the common structure.
// Internal causes are recorded on the gin context but never serialised.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.CodeInternal {
		_ = c.Error(err)
	}
	noStore(c)
	c.JSON(StatusFor(appErr.Code), Envelope{Error: appErr})
}

// BadRequest reports an unparsable request body.
func BadRequest(c *gin.Context, err error) {
	Error(c, appErrors.Wrap(err, appErrors.CodeValidation, "invalid payload"))
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// File streams a binary attachment.
func File(c *gin.Context, filename, contentType string, body []byte) {
	noStore(c)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
