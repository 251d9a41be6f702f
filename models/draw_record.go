package models

import (
	"time"
)

// DrawRecord 抽奖台账记录，只追加
// 奖品信息在抽奖时刻快照，后续改奖品表不影响历史记录
// 与账户的关联通过姓名而不是外键，离线账户也能留下记录
type DrawRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName   string    `gorm:"column:user_name;type:varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci;index;not null" json:"user_name"`
	PrizeName  string    `gorm:"column:prize_name;type:varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_0900_ai_ci;not null" json:"prize_name"`
	PrizeType  string    `gorm:"column:prize_type;type:varchar(20);not null" json:"prize_type"`
	PrizeValue float64   `gorm:"column:prize_value;not null;default:0" json:"prize_value"`
	IsRedeemed bool      `gorm:"column:is_redeemed;not null;default:false" json:"is_redeemed"` // 创建后唯一可变字段
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 设置表名
func (DrawRecord) TableName() string {
	return "draw_record"
}

// AutoSettled 该类型奖品是否自动结算（不需要工作人员核销）
// EMPTY无奖、POINT积分已入账、FRAGMENT碎片已计数
func AutoSettled(prizeType string) bool {
	switch prizeType {
	case PrizeTypeEmpty, PrizeTypePoint, PrizeTypeFragment:
		return true
	}
	return false
}
