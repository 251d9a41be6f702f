package gacha

import (
	"errors"
	"testing"

	"epe_gacha/models"
)

func TestValidateCatalog(t *testing.T) {
	t.Run("默认奖池权重总和为100", func(t *testing.T) {
		if err := ValidateCatalog(models.DefaultPrizePool); err != nil {
			t.Fatalf("默认奖池应通过校验: %v", err)
		}
	})

	t.Run("空奖池是配置错误", func(t *testing.T) {
		err := ValidateCatalog(nil)
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("期望ConfigurationError，实际为%v", err)
		}
	})

	t.Run("权重总和不是100是配置错误", func(t *testing.T) {
		pool := []models.Prize{
			{ID: "a", Name: "甲", Weight: 60},
			{ID: "b", Name: "乙", Weight: 30},
		}
		err := ValidateCatalog(pool)
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("期望ConfigurationError，实际为%v", err)
		}
	})

	t.Run("负权重是配置错误", func(t *testing.T) {
		pool := []models.Prize{
			{ID: "a", Name: "甲", Weight: 110},
			{ID: "b", Name: "乙", Weight: -10},
		}
		var confErr *ConfigurationError
		if !errors.As(ValidateCatalog(pool), &confErr) {
			t.Fatal("负权重应返回ConfigurationError")
		}
	})

	t.Run("奖品ID重复是配置错误", func(t *testing.T) {
		pool := []models.Prize{
			{ID: "a", Name: "甲", Weight: 50},
			{ID: "a", Name: "乙", Weight: 50},
		}
		var confErr *ConfigurationError
		if !errors.As(ValidateCatalog(pool), &confErr) {
			t.Fatal("重复ID应返回ConfigurationError")
		}
	})

	t.Run("配置错误时服务拒绝创建", func(t *testing.T) {
		if _, err := NewService(nil, nil, models.CostPerDraw); err == nil {
			t.Fatal("空奖池应拒绝创建服务")
		}
	})
}
