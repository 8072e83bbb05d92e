package controller

import (
	"errors"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

// renderError 把各层错误翻译成统一响应。
// 后端的 APIError 原样透传状态码和 detail，给用户看后端给的消息。
func renderError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		util.Error(c, apiErr.Status, apiErr.Detail)
	case errors.Is(err, util.ErrNoToken), errors.Is(err, util.ErrNotAuthenticated):
		util.Unauthorized(c)
	case errors.Is(err, util.ErrIllegalTransition),
		errors.Is(err, util.ErrNoActiveSession),
		errors.Is(err, util.ErrRecordingActive),
		errors.Is(err, util.ErrSessionFinished),
		errors.Is(err, util.ErrEmptyRecording),
		errors.Is(err, util.ErrRecordingTooLong),
		errors.Is(err, util.ErrLessonNoPhrases):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
