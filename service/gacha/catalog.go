package gacha

import (
	"fmt"
	"math"

	"epe_gacha/models"
)

// weightSumTolerance 权重总和允许的浮点偏差
const weightSumTolerance = 1e-6

// ValidateCatalog 启动时校验奖池配置
// 奖池为空、出现负权重、权重总和不是100都视为配置错误，
// 配置错误是致命的，不允许带病开抽
func ValidateCatalog(pool []models.Prize) error {
	if len(pool) == 0 {
		return &ConfigurationError{Reason: "奖池为空"}
	}

	seen := make(map[string]bool, len(pool))
	total := 0.0
	for _, p := range pool {
		if p.ID == "" {
			return &ConfigurationError{Reason: fmt.Sprintf("奖品[%s]缺少ID", p.Name)}
		}
		if seen[p.ID] {
			return &ConfigurationError{Reason: fmt.Sprintf("奖品ID重复: %s", p.ID)}
		}
		seen[p.ID] = true
		if p.Weight < 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("奖品[%s]权重为负: %v", p.Name, p.Weight)}
		}
		total += p.Weight
	}

	if math.Abs(total-100.0) > weightSumTolerance {
		return &ConfigurationError{Reason: fmt.Sprintf("权重总和应为100，实际为%v", total)}
	}
	return nil
}

// FindPrize 按名称从奖池里找奖品定义，找不到返回nil
// 台账只存快照，前台要展示稀有度和描述时用它回查活奖池
func (s *Service) FindPrize(name string) *models.Prize {
	for i := range s.Pool {
		if s.Pool[i].Name == name {
			return &s.Pool[i]
		}
	}
	return nil
}
