package routes

import (
	"epe_gacha/config"
	"epe_gacha/service/gacha"
	"epe_gacha/store"

	"github.com/gin-gonic/gin"
)

// Deps 路由依赖
type Deps struct {
	Cfg       config.Config
	Service   *gacha.Service
	Store     store.Store
	StaffHash []byte
}

// InitRoutes 初始化路由配置
func InitRoutes(router *gin.Engine, deps Deps) {
	// 登录相关路由
	InitSessionRoutes(router, deps)

	// 学员端抽奖相关路由
	InitGachaRoutes(router, deps)

	// 工作人员后台相关路由
	InitAdminRoutes(router, deps)
}
