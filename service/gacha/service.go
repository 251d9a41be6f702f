package gacha

import (
	"context"
	"log"
	"sync"
	"time"

	"epe_gacha/models"
	"epe_gacha/store"
)

// StaffNotifier 大奖通知，实物大奖和集齐碎片时提醒工作人员备货
type StaffNotifier interface {
	NotifyBigWin(userName, prizeName string) error
}

// Service 抽奖结算服务
// 持有奖池、存储适配器和随机来源；Rand可替换以便测试强制抽中指定奖品
type Service struct {
	Store    store.Store
	Pool     []models.Prize
	Cost     int
	Rand     UniformSource
	Notifier StaffNotifier // 可为nil
	History  RecordCache   // 可为nil

	// 存储故障期间的临时账户登记表，按姓名保持，进程内有效
	offlineMu sync.Mutex
	offline   map[string]*models.GachaUser
}

// NewService 创建抽奖服务，奖池配置错误时拒绝启动
func NewService(st store.Store, pool []models.Prize, cost int) (*Service, error) {
	if err := ValidateCatalog(pool); err != nil {
		return nil, err
	}
	return &Service{
		Store:   st,
		Pool:    pool,
		Cost:    cost,
		Rand:    DefaultSource,
		offline: make(map[string]*models.GachaUser),
	}, nil
}

// ResolveAccount 按姓名解析账户，不存在时按初始积分创建
// 存储完全不可用时退化为一个未入库的临时账户（哨兵ID），
// 该账户后续的结算只发生在内存里，不会留下任何台账
func (s *Service) ResolveAccount(name string) (*models.GachaUser, error) {
	user, err := s.Store.FindAccountByName(name)
	if err != nil {
		log.Printf("查询账户[%s]失败: %v，使用临时账户", name, err)
		return s.offlineAccount(name), nil
	}
	if user != nil {
		return user, nil
	}

	user, err = s.Store.CreateAccount(name, models.DefaultStartingPoints)
	if err != nil {
		log.Printf("创建账户[%s]失败: %v，使用临时账户", name, err)
		return s.offlineAccount(name), nil
	}
	log.Printf("新学员[%s]注册成功，初始积分%d", name, models.DefaultStartingPoints)
	return user, nil
}

// offlineAccount 未入库的临时账户，只活在当前进程里
// 同名请求返回同一个账户实例，故障期间的余额和碎片
// 在进程存活期内跨请求保持，不会每次都重置回初始积分
func (s *Service) offlineAccount(name string) *models.GachaUser {
	s.offlineMu.Lock()
	defer s.offlineMu.Unlock()
	if user, ok := s.offline[name]; ok {
		return user
	}
	user := &models.GachaUser{
		ID:     models.OfflineUserID,
		Name:   name,
		Points: models.DefaultStartingPoints,
	}
	s.offline[name] = user
	return user
}

// SettleDraw 一次完整的抽奖结算
// 步骤严格顺序执行：校验积分 -> 乐观扣费 -> 抽取奖品 -> 计算奖品效果
// -> 快照台账记录 -> 两次独立写库。写库失败不回滚内存状态，
// 页面余额以计算结果为准，失败以警告返回由前台明示
func (s *Service) SettleDraw(user *models.GachaUser, costPerDraw int) (*models.DrawRecord, []PersistWarning, error) {
	if user.Points < costPerDraw {
		return nil, nil, ErrInsufficientFunds
	}

	// 1. 乐观扣费
	pointsAfterCost := user.Points - costPerDraw

	// 2. 抽取奖品
	wonPrize := selectPrize(s.Pool, s.Rand)

	// 3. 在扣费后的余额上计算奖品效果
	finalPoints := pointsAfterCost
	fragment500 := user.Fragment500
	fragmentFree := user.FragmentFree

	if wonPrize.Type == models.PrizeTypePoint {
		finalPoints += int(wonPrize.Value)
	}
	if wonPrize.ID == models.PrizeIDFragment500 {
		fragment500++
	}
	if wonPrize.ID == models.PrizeIDFragmentFree {
		fragmentFree++
	}
	// CASH/VOUCHER/PHYSICAL/EMPTY不改积分和碎片，价值由工作人员线下核销兑现

	// 4. 快照台账记录，奖品信息与活奖池解耦
	record := &models.DrawRecord{
		UserName:   user.Name,
		PrizeName:  wonPrize.Name,
		PrizeType:  wonPrize.Type,
		PrizeValue: wonPrize.Value,
		IsRedeemed: false,
	}

	// 5. 持久化：记录插入和账户更新是两次独立调用，互不保证顺序和成败
	var warnings []PersistWarning
	if user.Persisted() {
		inserted, err := s.Store.InsertDrawRecord(record)
		if err != nil {
			log.Printf("抽奖记录写入失败，学员[%s]奖品[%s]: %v", user.Name, wonPrize.Name, err)
			warnings = append(warnings, PersistWarning{
				Op:       OpInsertRecord,
				Severity: SeveritySerious,
				Message:  "严重错误：中奖记录保存失败！可能是网络问题，请截图联系工作人员。",
				Err:      err,
			})
			// 记录没入库，给一个临时ID供当场展示，该ID不稳定也不会复用
			record.ID = time.Now().UnixMilli()
			record.CreatedAt = time.Now()
		} else {
			record = inserted
		}

		if _, err := s.Store.UpdateAccount(user.ID, map[string]interface{}{
			"points":        finalPoints,
			"fragment_500":  fragment500,
			"fragment_free": fragmentFree,
		}); err != nil {
			log.Printf("更新积分失败，学员[%s]: %v", user.Name, err)
			warnings = append(warnings, PersistWarning{
				Op:       OpUpdateAccount,
				Severity: SeverityMinor,
				Message:  "积分同步失败，页面余额以当前显示为准，偏差请找工作人员核对。",
				Err:      err,
			})
		}
	} else {
		// 临时账户：不写任何台账，记录仅供当场展示
		record.ID = time.Now().UnixMilli()
		record.CreatedAt = time.Now()
	}

	// 6. 无论写库成败，调用方看到的账户状态都是计算结果
	user.Points = finalPoints
	user.Fragment500 = fragment500
	user.FragmentFree = fragmentFree

	s.afterSettle(user, wonPrize, record)

	return record, warnings, nil
}

// afterSettle 结算后的旁路动作：缓存近期记录、大奖短信通知
// 全部尽力而为，失败只记日志，绝不影响结算结果
func (s *Service) afterSettle(user *models.GachaUser, wonPrize models.Prize, record *models.DrawRecord) {
	if s.History != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.History.Push(ctx, record); err != nil {
			log.Printf("记录缓存写入失败: %v", err)
		}
	}

	if s.Notifier == nil {
		return
	}
	fragmentComplete := (wonPrize.ID == models.PrizeIDFragment500 && user.Fragment500%3 == 0) ||
		(wonPrize.ID == models.PrizeIDFragmentFree && user.FragmentFree%3 == 0)
	if wonPrize.Rarity == models.RarityLegendary || fragmentComplete {
		prizeName := wonPrize.Name
		if fragmentComplete {
			prizeName += "（已集齐3个）"
		}
		go func(userName, prizeName string) {
			if err := s.Notifier.NotifyBigWin(userName, prizeName); err != nil {
				log.Printf("大奖通知发送失败: %v", err)
			}
		}(user.Name, prizeName)
	}
}

// RecentRecords 学员近期抽奖记录，优先走缓存，失败或未命中时查存储
// 缓存条数不足limit时按未命中处理：缓存重启后只回填了新抽的
// 记录，直接返回会把学员的历史截短
func (s *Service) RecentRecords(ctx context.Context, userName string, limit int) ([]models.DrawRecord, error) {
	if s.History != nil {
		records, err := s.History.Recent(ctx, userName, limit)
		if err != nil {
			log.Printf("读取记录缓存失败，回退数据库: %v", err)
		} else if len(records) >= limit {
			return records, nil
		}
	}
	return s.Store.ListDrawRecords(userName, limit)
}

// Redeem 核销工作流：把一条台账记录的核销标记从false翻到true
// 记录不存在返回store.ErrNotFound，已核销返回store.ErrAlreadyRedeemed，
// 不做自动重试，失败由工作人员重新操作
func (s *Service) Redeem(recordID int64) (*models.DrawRecord, error) {
	record, err := s.Store.SetRedeemed(recordID)
	if err != nil {
		return nil, err
	}
	log.Printf("记录%d核销成功，学员[%s]奖品[%s]", record.ID, record.UserName, record.PrizeName)

	// 缓存里的该记录还是未核销状态，直接丢弃让下次查询回源
	if s.History != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.History.Invalidate(ctx, record.UserName); err != nil {
			log.Printf("清除记录缓存失败: %v", err)
		}
	}
	return record, nil
}

// AdjustPoints 工作人员手工调整积分
// 写之前重新读一次当前余额再加减，尽量缩小与并发抽奖之间的
// 丢失更新窗口；这只是尽力而为，不是事务
func (s *Service) AdjustPoints(accountID int, delta int) (*models.GachaUser, error) {
	latest, err := s.Store.FindAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	updated, err := s.Store.UpdateAccount(accountID, map[string]interface{}{
		"points": latest.Points + delta,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("学员[%s]积分手工调整%+d，调整后%d", updated.Name, delta, updated.Points)
	return updated, nil
}
