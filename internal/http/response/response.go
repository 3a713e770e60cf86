package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/apierr"
)

// ErrorBody is the JSON shape of every 4xx/5xx answer.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// RespondAPIError writes err using its apierr status and code, or 500.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.As(err)
	if ae == nil {
		ae = apierr.Internal("internal_error", nil)
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	RespondError(c, status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
