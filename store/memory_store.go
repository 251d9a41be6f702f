package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"epe_gacha/models"
)

// MemoryStore 离线模式下的内存替身存储
// 数据只在进程生命周期内存在，记录ID用时间戳临时生成，
// 不稳定且不保证跨重启唯一，仅供当场查看
type MemoryStore struct {
	mu           sync.Mutex
	accounts     map[string]*models.GachaUser // 姓名 -> 账户
	records      []*models.DrawRecord         // 按插入顺序
	nextUserID   int
	lastRecordID int64
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:   make(map[string]*models.GachaUser),
		nextUserID: 1,
	}
}

// Persistent 内存存储不落盘
func (s *MemoryStore) Persistent() bool {
	return false
}

// FindAccountByName 按姓名查找账户
func (s *MemoryStore) FindAccountByName(name string) (*models.GachaUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.accounts[name]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// FindAccountByID 按ID查找账户
func (s *MemoryStore) FindAccountByID(id int) (*models.GachaUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.accounts {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// CreateAccount 创建账户
func (s *MemoryStore) CreateAccount(name string, startingPoints int) (*models.GachaUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &models.GachaUser{
		ID:        s.nextUserID,
		Name:      name,
		Points:    startingPoints,
		CreatedAt: time.Now(),
	}
	s.nextUserID++
	s.accounts[name] = user
	copied := *user
	return &copied, nil
}

// UpdateAccount 按ID更新账户字段
func (s *MemoryStore) UpdateAccount(id int, fields map[string]interface{}) (*models.GachaUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.accounts {
		if user.ID != id {
			continue
		}
		if v, ok := fields["points"]; ok {
			user.Points = toInt(v)
		}
		if v, ok := fields["fragment_500"]; ok {
			user.Fragment500 = toInt(v)
		}
		if v, ok := fields["fragment_free"]; ok {
			user.FragmentFree = toInt(v)
		}
		copied := *user
		return &copied, nil
	}
	return nil, ErrNotFound
}

// ListAccounts 列出账户，按积分从高到低
func (s *MemoryStore) ListAccounts(nameFilter string) ([]models.GachaUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.GachaUser, 0, len(s.accounts))
	for _, user := range s.accounts {
		if nameFilter != "" && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(nameFilter)) {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Points > result[j].Points
	})
	return result, nil
}

// InsertDrawRecord 追加抽奖记录，ID用毫秒时间戳临时生成
func (s *MemoryStore) InsertDrawRecord(record *models.DrawRecord) (*models.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	// 同一毫秒内连续抽奖时保证ID不重复
	if id <= s.lastRecordID {
		id = s.lastRecordID + 1
	}
	s.lastRecordID = id

	copied := *record
	copied.ID = id
	copied.CreatedAt = time.Now()
	s.records = append(s.records, &copied)

	returned := copied
	return &returned, nil
}

// ListDrawRecords 列出抽奖记录，按创建时间从新到旧
func (s *MemoryStore) ListDrawRecords(nameFilter string, limit int) ([]models.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.DrawRecord, 0)
	// 插入有序，倒序遍历即从新到旧
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if nameFilter != "" && record.UserName != nameFilter {
			continue
		}
		result = append(result, *record)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// SetRedeemed 翻转核销标记
func (s *MemoryStore) SetRedeemed(recordID int64) (*models.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.ID != recordID {
			continue
		}
		if record.IsRedeemed {
			return nil, ErrAlreadyRedeemed
		}
		record.IsRedeemed = true
		copied := *record
		return &copied, nil
	}
	return nil, ErrNotFound
}

// toInt 更新字段的值可能是int或int64
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
