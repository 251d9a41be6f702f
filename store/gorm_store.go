package store

import (
	"errors"
	"fmt"

	"epe_gacha/models"

	"gorm.io/gorm"
)

// GormStore 基于gorm+MySQL的存储实现
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore 创建数据库存储
func NewGormStore(database *gorm.DB) *GormStore {
	return &GormStore{DB: database}
}

// Persistent 数据库存储是持久的
func (s *GormStore) Persistent() bool {
	return true
}

// FindAccountByName 按姓名查找账户
func (s *GormStore) FindAccountByName(name string) (*models.GachaUser, error) {
	var user models.GachaUser
	if err := s.DB.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return &user, nil
}

// FindAccountByID 按ID查找账户
func (s *GormStore) FindAccountByID(id int) (*models.GachaUser, error) {
	var user models.GachaUser
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return &user, nil
}

// CreateAccount 创建账户，ID由数据库自增分配
func (s *GormStore) CreateAccount(name string, startingPoints int) (*models.GachaUser, error) {
	user := models.GachaUser{
		Name:   name,
		Points: startingPoints,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("创建账户失败: %w", err)
	}
	return &user, nil
}

// UpdateAccount 按ID更新账户字段
func (s *GormStore) UpdateAccount(id int, fields map[string]interface{}) (*models.GachaUser, error) {
	result := s.DB.Model(&models.GachaUser{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("更新账户失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindAccountByID(id)
}

// ListAccounts 列出账户，按积分从高到低
func (s *GormStore) ListAccounts(nameFilter string) ([]models.GachaUser, error) {
	var users []models.GachaUser
	query := s.DB.Order("points DESC")
	if nameFilter != "" {
		query = query.Where("name LIKE ?", "%"+nameFilter+"%")
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("查询账户列表失败: %w", err)
	}
	return users, nil
}

// InsertDrawRecord 追加抽奖记录
func (s *GormStore) InsertDrawRecord(record *models.DrawRecord) (*models.DrawRecord, error) {
	// ID和创建时间由数据库分配，调用方传入的值被忽略
	record.ID = 0
	if err := s.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("写入抽奖记录失败: %w", err)
	}
	return record, nil
}

// ListDrawRecords 列出抽奖记录，按创建时间从新到旧
func (s *GormStore) ListDrawRecords(nameFilter string, limit int) ([]models.DrawRecord, error) {
	var records []models.DrawRecord
	query := s.DB.Order("created_at DESC")
	if nameFilter != "" {
		query = query.Where("user_name = ?", nameFilter)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询抽奖记录失败: %w", err)
	}
	return records, nil
}

// SetRedeemed 翻转核销标记，只允许false->true
func (s *GormStore) SetRedeemed(recordID int64) (*models.DrawRecord, error) {
	var record models.DrawRecord
	if err := s.DB.Where("id = ?", recordID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询抽奖记录失败: %w", err)
	}
	if record.IsRedeemed {
		return nil, ErrAlreadyRedeemed
	}
	if err := s.DB.Model(&record).Update("is_redeemed", true).Error; err != nil {
		return nil, fmt.Errorf("更新核销状态失败: %w", err)
	}
	record.IsRedeemed = true
	return &record, nil
}
