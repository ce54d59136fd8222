package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape of every API response. Data carries the
// payload on success, Errors the detail on failure; both are omitted
// when empty so error responses stay small.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the envelope. status is "success" or "error".
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Errors:     errors,
	})
}
