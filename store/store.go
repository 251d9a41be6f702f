package store

import (
	"errors"

	"epe_gacha/models"
)

// 台账存储的公共错误
var (
	// ErrNotFound 记录或账户不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrAlreadyRedeemed 奖品记录已被核销过
	ErrAlreadyRedeemed = errors.New("该奖品已核销")
)

// Store 账户与抽奖台账的外部存储适配器
// 只要求单行原子更新，不假设跨表事务：记录插入和账户更新
// 是两次独立调用，任何一次都可能单独失败
type Store interface {
	// Persistent 数据是否真正落盘（离线内存模式返回false）
	Persistent() bool

	// FindAccountByName 按姓名查找账户，不存在时返回(nil, nil)
	FindAccountByName(name string) (*models.GachaUser, error)

	// FindAccountByID 按ID查找账户，不存在时返回ErrNotFound
	FindAccountByID(id int) (*models.GachaUser, error)

	// CreateAccount 创建账户，ID和创建时间由存储分配
	CreateAccount(name string, startingPoints int) (*models.GachaUser, error)

	// UpdateAccount 按ID更新账户字段（points/fragment_500/fragment_free），返回更新后的账户
	UpdateAccount(id int, fields map[string]interface{}) (*models.GachaUser, error)

	// ListAccounts 列出账户，按积分从高到低；nameFilter为空时不过滤
	ListAccounts(nameFilter string) ([]models.GachaUser, error)

	// InsertDrawRecord 追加一条抽奖记录，ID和创建时间由存储分配
	InsertDrawRecord(record *models.DrawRecord) (*models.DrawRecord, error)

	// ListDrawRecords 列出抽奖记录，按创建时间从新到旧
	// nameFilter为空时返回所有人的记录，limit<=0时不限制条数
	ListDrawRecords(nameFilter string, limit int) ([]models.DrawRecord, error)

	// SetRedeemed 把记录的核销标记从false翻转为true
	// 记录不存在返回ErrNotFound，已核销返回ErrAlreadyRedeemed
	SetRedeemed(recordID int64) (*models.DrawRecord, error)
}
