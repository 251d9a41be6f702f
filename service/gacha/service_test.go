package gacha

import (
	"errors"
	"testing"

	"epe_gacha/models"
	"epe_gacha/store"
)

// newTestService 用内存存储搭一个测试服务
func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	svc, err := NewService(memStore, models.DefaultPrizePool, models.CostPerDraw)
	if err != nil {
		t.Fatalf("创建服务失败: %v", err)
	}
	return svc, memStore
}

// downStore 账户查询和创建全部失败的存储，模拟数据库中途断连
type downStore struct {
	*store.MemoryStore
}

func (s *downStore) FindAccountByName(name string) (*models.GachaUser, error) {
	return nil, errors.New("连接超时")
}

func (s *downStore) CreateAccount(name string, startingPoints int) (*models.GachaUser, error) {
	return nil, errors.New("连接超时")
}

// writeFailStore 读操作正常但写操作全部失败的存储
type writeFailStore struct {
	*store.MemoryStore
}

func (s *writeFailStore) InsertDrawRecord(record *models.DrawRecord) (*models.DrawRecord, error) {
	return nil, errors.New("写入失败")
}

func (s *writeFailStore) UpdateAccount(id int, fields map[string]interface{}) (*models.GachaUser, error) {
	return nil, errors.New("写入失败")
}

func TestResolveAccount(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("首次登录按初始积分建档", func(t *testing.T) {
		user, err := svc.ResolveAccount("小明")
		if err != nil {
			t.Fatalf("解析账户失败: %v", err)
		}
		if user.Points != models.DefaultStartingPoints {
			t.Errorf("初始积分应为%d，实际为%d", models.DefaultStartingPoints, user.Points)
		}
		if user.Fragment500 != 0 || user.FragmentFree != 0 {
			t.Error("新账户碎片计数应为0")
		}
	})

	t.Run("再次登录返回同一账户", func(t *testing.T) {
		first, _ := svc.ResolveAccount("小红")
		second, err := svc.ResolveAccount("小红")
		if err != nil {
			t.Fatalf("解析账户失败: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("同名应解析到同一账户: %d != %d", first.ID, second.ID)
		}
	})
}

func TestSettleDrawInsufficientFunds(t *testing.T) {
	svc, _ := newTestService(t)
	user := &models.GachaUser{ID: 1, Name: "小明", Points: 10, Fragment500: 2, FragmentFree: 1}

	_, _, err := svc.SettleDraw(user, models.CostPerDraw)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("期望ErrInsufficientFunds，实际为%v", err)
	}
	// 校验失败不允许有任何改动
	if user.Points != 10 || user.Fragment500 != 2 || user.FragmentFree != 1 {
		t.Errorf("积分不足时账户不应被改动: %+v", user)
	}
}

func TestSettleDrawPointPrize(t *testing.T) {
	svc, _ := newTestService(t)
	// 强制抽中5积分奖（POINT，价值5）
	svc.Rand = sourceForPrize(t, svc.Pool, "p_pt_5")

	user, _ := svc.ResolveAccount("小明")
	record, warnings, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("内存存储不应产生持久化警告: %v", warnings)
	}

	// B - C + V = 300 - 30 + 5
	want := models.DefaultStartingPoints - models.CostPerDraw + 5
	if user.Points != want {
		t.Errorf("积分奖结算后余额应为%d，实际为%d", want, user.Points)
	}
	if record.PrizeType != models.PrizeTypePoint {
		t.Errorf("记录类型应为POINT，实际为%s", record.PrizeType)
	}
}

func TestSettleDrawFragment(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Rand = sourceForPrize(t, svc.Pool, models.PrizeIDFragment500)

	user, _ := svc.ResolveAccount("小明")
	_, _, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	if user.Fragment500 != 1 {
		t.Errorf("500元碎片应加1，实际为%d", user.Fragment500)
	}
	if user.FragmentFree != 0 {
		t.Errorf("免单碎片不应变动，实际为%d", user.FragmentFree)
	}
	// 碎片奖不返还积分
	if want := models.DefaultStartingPoints - models.CostPerDraw; user.Points != want {
		t.Errorf("碎片奖结算后余额应为%d，实际为%d", want, user.Points)
	}
}

func TestSettleDrawScenario(t *testing.T) {
	// 300积分起步，每次30：依次抽中5积分奖、20元红包、5元红包
	// 余额应为275、245、215；积分奖自动结算，两张红包记录可核销
	svc, memStore := newTestService(t)
	user, _ := svc.ResolveAccount("小明")

	steps := []struct {
		prizeID    string
		wantPoints int
	}{
		{"p_pt_5", 275},
		{"p_cash_20", 245},
		{"p_cash_5", 215},
	}
	for _, step := range steps {
		svc.Rand = sourceForPrize(t, svc.Pool, step.prizeID)
		if _, _, err := svc.SettleDraw(user, models.CostPerDraw); err != nil {
			t.Fatalf("抽中%s结算失败: %v", step.prizeID, err)
		}
		if user.Points != step.wantPoints {
			t.Fatalf("抽中%s后余额应为%d，实际为%d", step.prizeID, step.wantPoints, user.Points)
		}
	}

	// 存储里的账户应与内存账户一致
	stored, err := memStore.FindAccountByName("小明")
	if err != nil || stored == nil {
		t.Fatalf("查询账户失败: %v", err)
	}
	if stored.Points != 215 {
		t.Errorf("落库余额应为215，实际为%d", stored.Points)
	}

	// 三条台账：积分奖自动结算被排除，只有红包可核销
	records, err := memStore.ListDrawRecords("小明", 0)
	if err != nil {
		t.Fatalf("查询台账失败: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("应有3条台账，实际%d条", len(records))
	}
	redeemable := 0
	for _, record := range records {
		if record.IsRedeemed {
			t.Errorf("新记录不应是已核销状态: %+v", record)
		}
		if !models.AutoSettled(record.PrizeType) {
			redeemable++
		} else if record.PrizeType != models.PrizeTypePoint {
			t.Errorf("本场景自动结算的只有积分奖，实际有%s", record.PrizeType)
		}
	}
	if redeemable != 2 {
		t.Errorf("可核销记录应为2条（两张红包），实际%d条", redeemable)
	}
}

func TestResolveAccountOfflineRetained(t *testing.T) {
	// 存储故障期间同名学员的临时账户要跨请求保持，
	// 不能每次请求都回到初始积分
	svc, err := NewService(&downStore{store.NewMemoryStore()}, models.DefaultPrizePool, models.CostPerDraw)
	if err != nil {
		t.Fatalf("创建服务失败: %v", err)
	}
	svc.Rand = sourceForPrize(t, svc.Pool, "p_cash_5")

	user, err := svc.ResolveAccount("小明")
	if err != nil {
		t.Fatalf("解析账户失败: %v", err)
	}
	if user.Persisted() {
		t.Fatalf("存储故障时应得到临时账户，实际ID为%d", user.ID)
	}
	if _, _, err := svc.SettleDraw(user, models.CostPerDraw); err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	want := models.DefaultStartingPoints - models.CostPerDraw
	if user.Points != want {
		t.Fatalf("结算后余额应为%d，实际为%d", want, user.Points)
	}

	// 再次解析必须拿到同一份状态
	again, err := svc.ResolveAccount("小明")
	if err != nil {
		t.Fatalf("解析账户失败: %v", err)
	}
	if again.Points != want {
		t.Errorf("临时账户余额未跨请求保持: 抽后%d, 重新解析得到%d", want, again.Points)
	}

	// 碎片同样保持
	svc.Rand = sourceForPrize(t, svc.Pool, models.PrizeIDFragment500)
	if _, _, err := svc.SettleDraw(again, models.CostPerDraw); err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	third, _ := svc.ResolveAccount("小明")
	if third.Fragment500 != 1 {
		t.Errorf("临时账户碎片未跨请求保持: %d", third.Fragment500)
	}

	// 不同姓名各自独立
	other, _ := svc.ResolveAccount("小红")
	if other.Points != models.DefaultStartingPoints {
		t.Errorf("新临时账户应从初始积分开始，实际为%d", other.Points)
	}
}

func TestSettleDrawPersistFailures(t *testing.T) {
	// 两次独立写库都失败：不回滚内存状态，
	// 记录写入失败是严重警告，积分更新失败是轻微警告
	memStore := store.NewMemoryStore()
	svc, err := NewService(&writeFailStore{memStore}, models.DefaultPrizePool, models.CostPerDraw)
	if err != nil {
		t.Fatalf("创建服务失败: %v", err)
	}
	svc.Rand = sourceForPrize(t, svc.Pool, "p_cash_10")

	user, err := svc.ResolveAccount("小明")
	if err != nil {
		t.Fatalf("解析账户失败: %v", err)
	}
	if !user.Persisted() {
		t.Fatal("读操作正常时应得到入库账户")
	}

	record, warnings, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("写库失败不应让结算整体失败: %v", err)
	}

	if len(warnings) != 2 {
		t.Fatalf("应有2条警告，实际%d条: %v", len(warnings), warnings)
	}
	bySeverity := map[string]string{}
	for _, w := range warnings {
		bySeverity[w.Op] = w.Severity
		if w.Err == nil || w.Message == "" {
			t.Errorf("警告缺少原因或提示文案: %+v", w)
		}
	}
	if bySeverity[OpInsertRecord] != SeveritySerious {
		t.Errorf("记录写入失败应为serious级别，实际为%q", bySeverity[OpInsertRecord])
	}
	if bySeverity[OpUpdateAccount] != SeverityMinor {
		t.Errorf("积分更新失败应为minor级别，实际为%q", bySeverity[OpUpdateAccount])
	}

	// 内存账户仍然是计算结果
	if want := models.DefaultStartingPoints - models.CostPerDraw; user.Points != want {
		t.Errorf("写库失败后内存余额应为%d，实际为%d", want, user.Points)
	}
	// 没入库的记录带临时ID供当场展示
	if record.ID == 0 {
		t.Error("写入失败的记录应携带临时ID")
	}
	if records, _ := memStore.ListDrawRecords("小明", 0); len(records) != 0 {
		t.Errorf("写入失败时存储里不应出现记录: %d条", len(records))
	}
}

func TestSettleDrawOfflineAccount(t *testing.T) {
	// 临时账户（哨兵ID）的结算只发生在内存，不留任何台账
	svc, memStore := newTestService(t)
	svc.Rand = sourceForPrize(t, svc.Pool, "p_cash_5")

	user := &models.GachaUser{ID: models.OfflineUserID, Name: "路人", Points: models.DefaultStartingPoints}
	record, warnings, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("临时账户不写库，不应有警告: %v", warnings)
	}
	if record.ID == 0 {
		t.Error("临时记录也应有一个展示用ID")
	}
	if user.Points != models.DefaultStartingPoints-models.CostPerDraw {
		t.Errorf("临时账户余额计算错误: %d", user.Points)
	}

	records, _ := memStore.ListDrawRecords("路人", 0)
	if len(records) != 0 {
		t.Errorf("临时账户不应留下台账，实际%d条", len(records))
	}
}

func TestRedeem(t *testing.T) {
	svc, memStore := newTestService(t)
	svc.Rand = sourceForPrize(t, svc.Pool, "p_cash_10")

	user, _ := svc.ResolveAccount("小明")
	record, _, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	t.Run("首次核销成功", func(t *testing.T) {
		redeemed, err := svc.Redeem(record.ID)
		if err != nil {
			t.Fatalf("核销失败: %v", err)
		}
		if !redeemed.IsRedeemed {
			t.Error("核销后标记应为true")
		}
	})

	t.Run("重复核销返回明确错误且记录不变", func(t *testing.T) {
		_, err := svc.Redeem(record.ID)
		if !errors.Is(err, store.ErrAlreadyRedeemed) {
			t.Fatalf("期望ErrAlreadyRedeemed，实际为%v", err)
		}
		records, _ := memStore.ListDrawRecords("小明", 0)
		if len(records) != 1 || !records[0].IsRedeemed {
			t.Errorf("重复核销不应改动记录: %+v", records)
		}
	})

	t.Run("核销不存在的记录", func(t *testing.T) {
		if _, err := svc.Redeem(999999); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("期望ErrNotFound，实际为%v", err)
		}
	})
}

func TestDrawRecordRoundTrip(t *testing.T) {
	// 插入后按姓名查回，快照字段一致，核销前标记一直是false
	svc, memStore := newTestService(t)
	svc.Rand = sourceForPrize(t, svc.Pool, "p_vou_50")

	user, _ := svc.ResolveAccount("小明")
	record, _, err := svc.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	records, err := memStore.ListDrawRecords("小明", 10)
	if err != nil {
		t.Fatalf("查询台账失败: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("应查回1条记录，实际%d条", len(records))
	}
	got := records[0]
	if got.ID != record.ID || got.UserName != record.UserName ||
		got.PrizeName != record.PrizeName || got.PrizeType != record.PrizeType ||
		got.PrizeValue != record.PrizeValue {
		t.Errorf("快照字段不一致: 插入%+v 查回%+v", record, got)
	}
	if got.IsRedeemed {
		t.Error("核销前标记应为false")
	}

	if _, err := svc.Redeem(record.ID); err != nil {
		t.Fatalf("核销失败: %v", err)
	}
	records, _ = memStore.ListDrawRecords("小明", 10)
	if !records[0].IsRedeemed {
		t.Error("核销后查回的标记应为true")
	}
}

func TestAdjustPoints(t *testing.T) {
	svc, _ := newTestService(t)
	user, _ := svc.ResolveAccount("小明")

	t.Run("充值", func(t *testing.T) {
		updated, err := svc.AdjustPoints(user.ID, 100)
		if err != nil {
			t.Fatalf("调整积分失败: %v", err)
		}
		if updated.Points != models.DefaultStartingPoints+100 {
			t.Errorf("充值后余额应为%d，实际为%d", models.DefaultStartingPoints+100, updated.Points)
		}
	})

	t.Run("扣除", func(t *testing.T) {
		updated, err := svc.AdjustPoints(user.ID, -30)
		if err != nil {
			t.Fatalf("调整积分失败: %v", err)
		}
		if updated.Points != models.DefaultStartingPoints+70 {
			t.Errorf("扣除后余额应为%d，实际为%d", models.DefaultStartingPoints+70, updated.Points)
		}
	})

	t.Run("学员不存在", func(t *testing.T) {
		if _, err := svc.AdjustPoints(999999, 10); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("期望ErrNotFound，实际为%v", err)
		}
	})
}
