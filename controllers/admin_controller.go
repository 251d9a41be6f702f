package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"epe_gacha/models"
	"epe_gacha/service/gacha"
	"epe_gacha/store"
	"epe_gacha/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AdminController 后台控制器：核销、学员管理、台账导出
type AdminController struct {
	Service *gacha.Service
	Store   store.Store
}

// RedeemRequest 核销请求结构体
type RedeemRequest struct {
	RecordID int64 `json:"record_id" binding:"required"`
}

// GetRecordsRequest 查询台账请求结构体
type GetRecordsRequest struct {
	Name  string `json:"name"`  // 可选，按学员姓名过滤
	Limit int    `json:"limit"` // 可选，0表示不限制
}

// GetUsersRequest 查询学员请求结构体
type GetUsersRequest struct {
	Search string `json:"search"` // 可选，姓名模糊搜索
}

// AdjustPointsRequest 手工调整积分请求结构体
type AdjustPointsRequest struct {
	UserID int `json:"user_id" binding:"required"`
	Delta  int `json:"delta" binding:"required"` // 正数增加，负数扣除
}

// storeReady 后台所有操作都依赖真实数据库
// 离线模式下台账只在内存里，核销和充值没有意义，统一挡掉
func (ac *AdminController) storeReady(c *gin.Context) bool {
	if ac.Store.Persistent() {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "无法连接后台：检测到未配置数据库，请先配置MYSQL_DSN。",
	})
	return false
}

// GetRecords 查询抽奖台账，从新到旧
// redeemable标记由奖品类型算出：EMPTY/POINT/FRAGMENT自动结算，
// 永远不提供核销操作
func (ac *AdminController) GetRecords(c *gin.Context) {
	if !ac.storeReady(c) {
		return
	}

	var request GetRecordsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	records, err := ac.Store.ListDrawRecords(request.Name, request.Limit)
	if err != nil {
		log.Printf("查询台账失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取记录失败"})
		return
	}

	list := make([]gin.H, 0, len(records))
	for _, record := range records {
		list = append(list, gin.H{
			"id":          record.ID,
			"user_name":   record.UserName,
			"prize_name":  record.PrizeName,
			"prize_type":  record.PrizeType,
			"prize_value": record.PrizeValue,
			"is_redeemed": record.IsRedeemed,
			"created_at":  record.CreatedAt,
			"redeemable":  !record.IsRedeemed && !models.AutoSettled(record.PrizeType),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "查询成功", "data": list})
}

// Redeem 核销一条台账记录
// 已核销的记录再次核销会得到明确警告，而不是静默成功；
// 失败不自动重试，由工作人员重新操作
func (ac *AdminController) Redeem(c *gin.Context) {
	if !ac.storeReady(c) {
		return
	}

	var request RedeemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	record, err := ac.Service.Redeem(request.RecordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
			return
		}
		if errors.Is(err, store.ErrAlreadyRedeemed) {
			c.JSON(http.StatusConflict, gin.H{"error": "该奖品已核销过，请勿重复操作"})
			return
		}
		log.Printf("核销记录%d失败: %v", request.RecordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "核销失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "核销成功", "data": record})
}

// GetUsers 查询学员列表，按积分从高到低，支持姓名模糊搜索
func (ac *AdminController) GetUsers(c *gin.Context) {
	if !ac.storeReady(c) {
		return
	}

	var request GetUsersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	users, err := ac.Store.ListAccounts(request.Search)
	if err != nil {
		log.Printf("查询学员列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取用户失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "查询成功", "data": users})
}

// AdjustPoints 手工调整学员积分（充值或扣除）
func (ac *AdminController) AdjustPoints(c *gin.Context) {
	if !ac.storeReady(c) {
		return
	}

	var request AdjustPointsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	user, err := ac.Service.AdjustPoints(request.UserID, request.Delta)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学员不存在"})
			return
		}
		log.Printf("调整学员%d积分失败: %v", request.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "修改失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "修改成功！", "data": user})
}

// ExportRecords 导出全部台账到Excel
// 积分台账和数据库可能因为写库失败出现偏差，这份导出就是
// 工作人员人工对账用的底单
func (ac *AdminController) ExportRecords(c *gin.Context) {
	if !ac.storeReady(c) {
		return
	}

	records, err := ac.Store.ListDrawRecords("", 0)
	if err != nil {
		log.Printf("导出台账失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取记录失败"})
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("关闭Excel文件失败: %v", err)
		}
	}()

	const sheet = "抽奖台账"
	f.SetSheetName("Sheet1", sheet)

	// 设置表头
	headers := []string{"序号", "时间", "姓名", "奖品", "类型", "价值", "核销状态"}
	for i, header := range headers {
		cell := string(rune('A'+i)) + "1"
		f.SetCellValue(sheet, cell, header)
	}

	// 填充数据
	for i, record := range records {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, i+1)
		f.SetCellValue(sheet, "B"+row, utils.FormatDateTime(record.CreatedAt))
		f.SetCellValue(sheet, "C"+row, record.UserName)
		f.SetCellValue(sheet, "D"+row, record.PrizeName)
		f.SetCellValue(sheet, "E"+row, record.PrizeType)
		f.SetCellValue(sheet, "F"+row, record.PrizeValue)
		if record.IsRedeemed {
			f.SetCellValue(sheet, "G"+row, "已核销")
		} else {
			f.SetCellValue(sheet, "G"+row, "待处理")
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("生成Excel文件失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成Excel文件失败"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=draw_records.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
