package main

import (
	"log"

	"epe_gacha/config"
	"epe_gacha/db"
	"epe_gacha/middleware"
	"epe_gacha/models"
	"epe_gacha/routes"
	"epe_gacha/service/gacha"
	"epe_gacha/service/message"
	"epe_gacha/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 加载配置
	appConfig := config.LoadConfig()

	// 初始化数据库，连接失败时进入离线模式而不是退出
	db.InitDB(appConfig)
	// 运行数据库迁移，同步表结构变更
	db.RunMigrations()

	// 初始化Redis（可选，近期记录缓存）
	db.InitRedis(appConfig)

	// 选择存储：数据库可用走MySQL，否则用内存替身
	var dataStore store.Store
	if db.Available() {
		dataStore = store.NewGormStore(db.DB)
	} else {
		dataStore = store.NewMemoryStore()
	}

	// 奖池配置错误是致命的，禁止带病开抽
	gachaService, err := gacha.NewService(dataStore, models.DefaultPrizePool, models.CostPerDraw)
	if err != nil {
		log.Fatalf("初始化抽奖服务失败: %v", err)
	}
	if history := gacha.NewHistoryCache(db.RDB); history != nil {
		gachaService.History = history
	}
	if notifier := message.NewNotifier(appConfig.SMSConfig); notifier != nil {
		gachaService.Notifier = notifier
	}

	// 工作人员口令启动时转成bcrypt哈希，之后只比对哈希
	staffHash, err := bcrypt.GenerateFromPassword([]byte(appConfig.StaffPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("生成口令哈希失败: %v", err)
	}

	// 创建Gin引擎
	router := gin.Default()

	// 设置中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogMiddleware(appConfig.LogDir))

	// 初始化路由
	routes.InitRoutes(router, routes.Deps{
		Cfg:       appConfig,
		Service:   gachaService,
		Store:     dataStore,
		StaffHash: staffHash,
	})

	// 启动服务器
	log.Printf("Server starting on port %s\n", appConfig.ServerPort)
	if err := router.Run(":" + appConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
