package gacha

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds 积分不足，抽奖前校验失败，账户不会被改动
var ErrInsufficientFunds = errors.New("积分不足")

// ConfigurationError 奖池配置错误，致命，禁止抽奖
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "奖池配置错误: " + e.Reason
}

// 结算后两次独立写库的操作名
const (
	OpInsertRecord  = "record_insert"
	OpUpdateAccount = "account_update"
)

// 持久化失败的严重级别
// 记录写入失败意味着台账丢失，必须醒目提示让用户截图找工作人员；
// 账户更新失败只造成积分偏差，记日志并低调提示即可
const (
	SeveritySerious = "serious"
	SeverityMinor   = "minor"
)

// PersistWarning 结算后持久化失败的警告
// 结算引擎不会因为写库失败回滚内存中的扣费和奖品，
// 页面显示的余额以计算结果为准，偏差由工作人员事后人工对账
type PersistWarning struct {
	Op       string `json:"op"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

func (w *PersistWarning) Error() string {
	return fmt.Sprintf("%s失败: %v", w.Op, w.Err)
}
