package routes

import (
	"epe_gacha/controllers"
	"epe_gacha/middleware"

	"github.com/gin-gonic/gin"
)

// InitAdminRoutes 初始化工作人员后台相关路由，整组走JWT认证
func InitAdminRoutes(router *gin.Engine, deps Deps) {
	adminController := &controllers.AdminController{
		Service: deps.Service,
		Store:   deps.Store,
	}

	adminGroup := router.Group("/admin/")
	adminGroup.Use(middleware.StaffAuthMiddleware(deps.Cfg))
	{
		// 查询抽奖台账
		adminGroup.POST("get_records", adminController.GetRecords)
		// 核销奖品
		adminGroup.POST("redeem", adminController.Redeem)
		// 查询学员列表（支持搜索）
		adminGroup.POST("get_users", adminController.GetUsers)
		// 手工调整积分
		adminGroup.POST("adjust_points", adminController.AdjustPoints)
		// 导出台账Excel
		adminGroup.GET("export_records", adminController.ExportRecords)
	}
}
