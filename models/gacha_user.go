package models

import (
	"time"
)

// OfflineUserID 离线模式下未入库账户的哨兵ID
const OfflineUserID = 0

// DefaultStartingPoints 新学员的初始积分
const DefaultStartingPoints = 300

// GachaUser 抽奖学员账户模型
// 姓名是唯一的查找键，没有第二凭证；同名即同人
type GachaUser struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci;uniqueIndex;not null" json:"name"`
	Points       int       `gorm:"column:points;type:int;not null;default:0" json:"points"`
	Fragment500  int       `gorm:"column:fragment_500;type:int;not null;default:0" json:"fragment_500"`  // 500元红包碎片，只增不减
	FragmentFree int       `gorm:"column:fragment_free;type:int;not null;default:0" json:"fragment_free"` // 季度免单碎片，只增不减
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 设置表名
func (GachaUser) TableName() string {
	return "gacha_user"
}

// Persisted 账户是否已入库（离线账户ID为哨兵值）
func (u *GachaUser) Persisted() bool {
	return u.ID != OfflineUserID
}
