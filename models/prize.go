package models

// 奖品类型
const (
	PrizeTypeEmpty    = "EMPTY"    // 纯空奖
	PrizeTypePoint    = "POINT"    // 积分返还
	PrizeTypeCash     = "CASH"     // 现金红包
	PrizeTypeVoucher  = "VOUCHER"  // 课程代金券
	PrizeTypePhysical = "PHYSICAL" // 实物奖品
	PrizeTypeFragment = "FRAGMENT" // 传说碎片
)

// 稀有度，从低到高
const (
	RarityCommon    = "COMMON"
	RarityUncommon  = "UNCOMMON"
	RarityRare      = "RARE"
	RarityLegendary = "LEGENDARY"
)

// Prize 奖品定义，静态配置，不入库
// Value的含义随类型变化：CASH/VOUCHER是可兑换金额，POINT是返还积分，
// PHYSICAL是参考价值，EMPTY/FRAGMENT为0
// Weight是百分比权重，整个奖池之和应为100
type Prize struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Weight      float64 `json:"weight"`
	Rarity      string  `json:"rarity"`
	Description string  `json:"description"`
}
