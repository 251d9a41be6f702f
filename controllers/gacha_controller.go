package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"epe_gacha/models"
	"epe_gacha/service/gacha"

	"github.com/gin-gonic/gin"
)

// GachaController 抽奖控制器，学员端的全部接口
type GachaController struct {
	Service *gacha.Service
}

// DrawRequest 抽奖请求结构体
type DrawRequest struct {
	Name string `json:"name" binding:"required"`
}

// HistoryRequest 查询近期抽奖记录请求结构体
type HistoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Limit int    `json:"limit"`
}

// Draw 抽一次
// 姓名就是账户标识；扣费是乐观的，写库失败不回滚，
// 失败信息以warnings形式原样交给前台明示
func (gc *GachaController) Draw(c *gin.Context) {
	var request DrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	name := strings.TrimSpace(request.Name)
	user, err := gc.Service.ResolveAccount(name)
	if err != nil {
		log.Printf("解析账户[%s]失败: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询账户失败"})
		return
	}

	record, warnings, err := gc.Service.SettleDraw(user, models.CostPerDraw)
	if err != nil {
		if errors.Is(err, gacha.ErrInsufficientFunds) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("积分不足！需要 %d 积分，你只有 %d 积分。", models.CostPerDraw, user.Points),
			})
			return
		}
		log.Printf("抽奖结算失败，学员[%s]: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "抽奖失败"})
		return
	}

	warningList := make([]gin.H, 0, len(warnings))
	for _, w := range warnings {
		warningList = append(warningList, gin.H{
			"op":       w.Op,
			"severity": w.Severity,
			"message":  w.Message,
		})
	}

	data := gin.H{
		"record":   record,
		"user":     user,
		"warnings": warningList,
	}
	// 回查活奖池补上稀有度和描述，供翻牌展示
	if prize := gc.Service.FindPrize(record.PrizeName); prize != nil {
		data["prize"] = prize
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "抽奖成功", "data": data})
}

// History 学员近期抽奖记录，最多10条，从新到旧
func (gc *GachaController) History(c *gin.Context) {
	var request HistoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	limit := request.Limit
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	records, err := gc.Service.RecentRecords(c.Request.Context(), strings.TrimSpace(request.Name), limit)
	if err != nil {
		log.Printf("查询抽奖记录失败，学员[%s]: %v", request.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询抽奖记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "查询成功", "data": records})
}

// Prizes 奖池目录，前台展示概率公示用
func (gc *GachaController) Prizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data": gin.H{
			"prizes":        gc.Service.Pool,
			"cost_per_draw": models.CostPerDraw,
		},
	})
}

// Status 存储状态
// 未配置数据库时前台据此显示"单机演示模式"横幅
func (gc *GachaController) Status(c *gin.Context) {
	persistent := gc.Service.Store.Persistent()
	message := ""
	if !persistent {
		message = "警告：数据库未连接。当前为【单机演示模式】，抽奖数据无法传送到工作人员后台。"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"store_persistent": persistent,
			"message":          message,
		},
	})
}
