package controller

import (
	"sauticare_web/internal/auth"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store *auth.SessionStore
}

func NewHealthController(store *auth.SessionStore) *HealthController {
	return &HealthController{Store: store}
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status":  "ok",
		"session": c.Store.State(),
	})
}
