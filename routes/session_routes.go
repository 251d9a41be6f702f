package routes

import (
	"epe_gacha/controllers"

	"github.com/gin-gonic/gin"
)

// InitSessionRoutes 初始化登录相关路由
func InitSessionRoutes(router *gin.Engine, deps Deps) {
	sessionController := &controllers.SessionController{
		Cfg:       deps.Cfg,
		Service:   deps.Service,
		StaffHash: deps.StaffHash,
	}

	sessionGroup := router.Group("/session/")
	{
		// 学员登录，首次登录自动建档
		sessionGroup.POST("student_login", sessionController.StudentLogin)
		// 工作人员口令验证，换取后台令牌
		sessionGroup.POST("staff_login", sessionController.StaffLogin)
	}
}
