package db

import (
	"log"

	"epe_gacha/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB 全局数据库连接，离线模式下为nil
var DB *gorm.DB

// InitDB 初始化数据库连接
// 未配置DSN或连接失败时不会中止进程，系统进入离线模式，
// 所有数据只保存在内存中，前台和后台都会明确提示
func InitDB(appConfig config.Config) {
	dsn := appConfig.DBConfig.DSN
	if dsn == "" {
		log.Println("未配置MYSQL_DSN，进入离线模式，数据不会被保存！")
		return
	}

	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("数据库连接失败: %v，进入离线模式，数据不会被保存！", err)
		return
	}

	DB = database
	log.Println("数据库连接成功")
}

// Available 数据库是否可用
func Available() bool {
	return DB != nil
}
