package models

// CostPerDraw 单次抽奖消耗积分
const CostPerDraw = 30

// 保留奖品ID，结算引擎据此识别碎片奖
const (
	PrizeIDFragment500  = "p_frag_500"
	PrizeIDFragmentFree = "p_frag_free"
)

// DefaultPrizePool 默认奖池
// 权重合计: 20+20+3.52+2+15+5+3+2+4+1.5+10+5+5+2+1+0.5+0.24+0.24 = 100
var DefaultPrizePool = []Prize{
	// 纯空奖 (20%)
	{ID: "p_empty", Name: "再接再厉", Type: PrizeTypeEmpty, Value: 0, Weight: 20.0, Rarity: RarityCommon, Description: "差一点点就中了！"},

	// 积分返还奖 (25.52%)
	{ID: "p_pt_5", Name: "5积分", Type: PrizeTypePoint, Value: 5, Weight: 20.0, Rarity: RarityCommon, Description: "价值1元"},
	{ID: "p_pt_10", Name: "10积分", Type: PrizeTypePoint, Value: 10, Weight: 3.52, Rarity: RarityCommon, Description: "价值2元"},
	{ID: "p_pt_20", Name: "20积分", Type: PrizeTypePoint, Value: 20, Weight: 2.0, Rarity: RarityUncommon, Description: "价值4元"},

	// 现金红包类 (25%)
	{ID: "p_cash_5", Name: "5元红包", Type: PrizeTypeCash, Value: 5, Weight: 15.0, Rarity: RarityUncommon, Description: "微信红包"},
	{ID: "p_cash_10", Name: "10元红包", Type: PrizeTypeCash, Value: 10, Weight: 5.0, Rarity: RarityUncommon, Description: "微信红包"},
	{ID: "p_cash_20", Name: "20元红包", Type: PrizeTypeCash, Value: 20, Weight: 3.0, Rarity: RarityRare, Description: "微信红包"},
	{ID: "p_cash_100", Name: "100元红包", Type: PrizeTypeCash, Value: 100, Weight: 2.0, Rarity: RarityLegendary, Description: "大额红包！"},

	// 课程代金券 (5.5%)
	{ID: "p_vou_50", Name: "50元课程券", Type: PrizeTypeVoucher, Value: 50, Weight: 4.0, Rarity: RarityUncommon, Description: "课程代金券"},
	{ID: "p_vou_200", Name: "200元课程券", Type: PrizeTypeVoucher, Value: 200, Weight: 1.5, Rarity: RarityRare, Description: "大额课程券"},

	// 实物奖品 (23.5%)
	{ID: "p_item_drink", Name: "运动饮料/能量棒", Type: PrizeTypePhysical, Value: 5, Weight: 10.0, Rarity: RarityCommon, Description: "补充能量"},
	{ID: "p_item_badge", Name: "纪念徽章", Type: PrizeTypePhysical, Value: 20, Weight: 5.0, Rarity: RarityUncommon, Description: "限量版"},
	{ID: "p_item_gear", Name: "随机运动装备", Type: PrizeTypePhysical, Value: 55, Weight: 5.0, Rarity: RarityRare, Description: "跳绳/瑜伽垫/哑铃等"},
	{ID: "p_item_cloth", Name: "运动T恤/短裤", Type: PrizeTypePhysical, Value: 100, Weight: 2.0, Rarity: RarityRare, Description: "EPE定制"},
	{ID: "p_item_coat", Name: "运动外套", Type: PrizeTypePhysical, Value: 180, Weight: 1.0, Rarity: RarityLegendary, Description: "高端外套"},
	{ID: "p_item_band", Name: "运动手环", Type: PrizeTypePhysical, Value: 200, Weight: 0.5, Rarity: RarityLegendary, Description: "智能监测"},

	// 传说碎片 (0.48%)
	{ID: PrizeIDFragment500, Name: "500元红包碎片", Type: PrizeTypeFragment, Value: 0, Weight: 0.24, Rarity: RarityLegendary, Description: "集齐3个兑换500元"},
	{ID: PrizeIDFragmentFree, Name: "季度免单碎片", Type: PrizeTypeFragment, Value: 0, Weight: 0.24, Rarity: RarityLegendary, Description: "集齐3个兑换3500元免单"},
}
