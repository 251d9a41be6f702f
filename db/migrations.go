package db

import (
	"fmt"
	"log"

	"epe_gacha/models"
)

// RunMigrations 运行数据库迁移
// 此函数用于同步所有模型的数据库结构，离线模式下直接跳过
func RunMigrations() {
	if DB == nil {
		log.Println("数据库未连接，跳过迁移")
		return
	}

	log.Println("开始运行数据库迁移...")

	modelsToMigrate := []interface{}{
		&models.GachaUser{},
		&models.DrawRecord{},
	}

	// 循环同步每个模型
	for _, model := range modelsToMigrate {
		modelName := fmt.Sprintf("%T", model)
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("同步%v模型结构失败: %v", modelName, err)
		} else {
			log.Printf("%v 模型结构同步成功", modelName)
		}
	}

	log.Println("数据库迁移完成！")
}
