package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyguide-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError writes an *apierr.Error with its own status and code and
// hides anything else behind a 500.
func RespondAPIError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		RespondError(c, status, ae.Code, ae)
		return
	}
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, "internal_error", errInternal)
}

type internalError struct{}

func (internalError) Error() string { return "internal server error" }

var errInternal error = internalError{}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
