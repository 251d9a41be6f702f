package gacha

import (
	"math/rand"

	"epe_gacha/models"
)

// UniformSource 均匀随机数来源，返回[0,1)内的实数
// 可注入，测试时传固定值就能强制抽中指定奖品
type UniformSource func() float64

// DefaultSource 默认随机来源
func DefaultSource() float64 {
	return rand.Float64()
}

// selectPrize 累积权重反演抽取一个奖品
// 在[0, 权重总和)内取一个随机数r，沿奖池累加权重c，
// 返回第一个满足 r < c 的奖品；权重为0的奖品永远不会被选中
// 浮点累加误差导致走完整个奖池都没命中时，兜底返回第一个奖品
func selectPrize(pool []models.Prize, source UniformSource) models.Prize {
	total := 0.0
	for _, p := range pool {
		total += p.Weight
	}

	r := source() * total
	c := 0.0
	for _, p := range pool {
		c += p.Weight
		if r < c {
			return p
		}
	}
	// 浮点误差兜底
	return pool[0]
}
