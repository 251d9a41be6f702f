package routes

import (
	"epe_gacha/controllers"

	"github.com/gin-gonic/gin"
)

// InitGachaRoutes 初始化学员端抽奖相关路由
func InitGachaRoutes(router *gin.Engine, deps Deps) {
	gachaController := &controllers.GachaController{Service: deps.Service}

	gachaGroup := router.Group("/gacha/")
	{
		// 抽一次
		gachaGroup.POST("draw", gachaController.Draw)
		// 近期抽奖记录
		gachaGroup.POST("history", gachaController.History)
		// 奖池目录（概率公示）
		gachaGroup.POST("prizes", gachaController.Prizes)
		// 存储状态，前台横幅用
		gachaGroup.GET("status", gachaController.Status)
	}
}
