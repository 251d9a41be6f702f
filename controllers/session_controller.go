package controllers

import (
	"log"
	"net/http"
	"strings"

	"epe_gacha/config"
	"epe_gacha/service/gacha"
	"epe_gacha/service/msg"
	"epe_gacha/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// SessionController 登录控制器
// 学员端和工作人员端是两个互斥入口：学员只报姓名，
// 工作人员凭共享口令换取后台令牌
type SessionController struct {
	Cfg       config.Config
	Service   *gacha.Service
	StaffHash []byte // 启动时由明文口令生成的bcrypt哈希
}

// StudentLoginRequest 学员登录请求结构体
type StudentLoginRequest struct {
	Name string `json:"name" binding:"required"`
}

// StaffLoginRequest 工作人员登录请求结构体
type StaffLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// StudentLogin 学员登录
// 按姓名查找账户，首次登录自动创建并发放初始积分
func (sc *SessionController) StudentLogin(c *gin.Context) {
	var request StudentLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("请求参数错误", err))
		return
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "姓名不能为空"})
		return
	}

	user, err := sc.Service.ResolveAccount(name)
	if err != nil {
		log.Printf("解析账户[%s]失败: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败，请稍后重试"})
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("登录成功", map[string]any{
		"user":             user,
		"store_persistent": sc.Service.Store.Persistent() && user.Persisted(),
	}))
}

// StaffLogin 工作人员登录，口令正确时签发JWT
// 共享口令不绑定个人身份，也不做防爆破，只是前台和后台之间的一道门
func (sc *SessionController) StaffLogin(c *gin.Context) {
	var request StaffLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("请求参数错误", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword(sc.StaffHash, []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "密码错误！"})
		return
	}

	token, err := utils.GenerateStaffToken(sc.Cfg)
	if err != nil {
		log.Printf("签发工作人员令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签发令牌失败"})
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("验证通过", map[string]any{
		"access_token":     token,
		"store_persistent": sc.Service.Store.Persistent(),
	}))
}
