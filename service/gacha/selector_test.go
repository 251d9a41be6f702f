package gacha

import (
	"math"
	"math/rand"
	"testing"

	"epe_gacha/models"
)

// fixedSource 固定返回同一个随机值的来源，用于强制抽中指定奖品
func fixedSource(v float64) UniformSource {
	return func() float64 { return v }
}

// sourceForPrize 构造一个必定抽中目标奖品的随机来源
func sourceForPrize(t *testing.T, pool []models.Prize, prizeID string) UniformSource {
	t.Helper()
	total := 0.0
	for _, p := range pool {
		total += p.Weight
	}
	c := 0.0
	for _, p := range pool {
		if p.ID == prizeID {
			if p.Weight <= 0 {
				t.Fatalf("奖品%s权重为0，无法强制抽中", prizeID)
			}
			// 落在该奖品概率区间的中点
			return fixedSource((c + p.Weight/2) / total)
		}
		c += p.Weight
	}
	t.Fatalf("奖池中没有奖品%s", prizeID)
	return nil
}

func TestSelectPrize(t *testing.T) {
	pool := []models.Prize{
		{ID: "a", Name: "甲", Weight: 30},
		{ID: "b", Name: "乙", Weight: 0},
		{ID: "c", Name: "丙", Weight: 70},
	}

	t.Run("区间边界归属下一个有权重的奖品", func(t *testing.T) {
		// r恰好等于30时，r < c对甲不成立，乙权重为0也不成立，应落到丙
		got := selectPrize(pool, fixedSource(0.3))
		if got.ID != "c" {
			t.Errorf("边界值应选中丙，实际选中%s", got.ID)
		}
	})

	t.Run("区间内命中", func(t *testing.T) {
		got := selectPrize(pool, fixedSource(0.15))
		if got.ID != "a" {
			t.Errorf("r=15应选中甲，实际选中%s", got.ID)
		}
		got = selectPrize(pool, fixedSource(0.99))
		if got.ID != "c" {
			t.Errorf("r=99应选中丙，实际选中%s", got.ID)
		}
	})

	t.Run("权重为0的奖品永远不会被选中", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 100000; i++ {
			got := selectPrize(pool, rng.Float64)
			if got.ID == "b" {
				t.Fatalf("第%d次抽中了权重为0的奖品", i)
			}
		}
	})

	t.Run("随机来源越界时兜底返回第一个奖品", func(t *testing.T) {
		// 来源返回1.0时r等于权重总和，走完奖池也不会命中
		got := selectPrize(pool, fixedSource(1.0))
		if got.ID != "a" {
			t.Errorf("兜底应返回第一个奖品甲，实际返回%s", got.ID)
		}
	})
}

func TestSelectPrizeDistribution(t *testing.T) {
	// 大样本下各奖品的频率应收敛到weight/100
	const trials = 500000
	rng := rand.New(rand.NewSource(42))

	counts := make(map[string]int, len(models.DefaultPrizePool))
	for i := 0; i < trials; i++ {
		got := selectPrize(models.DefaultPrizePool, rng.Float64)
		counts[got.ID]++
	}

	for _, p := range models.DefaultPrizePool {
		expected := p.Weight / 100.0
		actual := float64(counts[p.ID]) / trials
		// 允许6个标准差的波动，固定种子下结果是确定的
		tolerance := 6 * math.Sqrt(expected*(1-expected)/trials)
		if math.Abs(actual-expected) > tolerance {
			t.Errorf("奖品%s频率偏差过大: 期望%.5f 实际%.5f 容差%.5f", p.ID, expected, actual, tolerance)
		}
	}
}
