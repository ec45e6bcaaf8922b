package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"backend/internal/db"
	"backend/internal/logger"
)

// 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session 登录态，缓存里按 token 存放
type Session struct {
	Username string `json:"username"`
	Identity string `json:"identity"`
}

// AuthHandler 登录与登出接口，会话放在带 TTL 的内存缓存里
type AuthHandler struct {
	userRepo   *db.UserRepository
	sessions   *gocache.Cache
	sessionTTL time.Duration
}

func NewAuthHandler(userRepo *db.UserRepository, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		sessions:   gocache.New(sessionTTL, 10*time.Minute),
		sessionTTL: sessionTTL,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "请求格式错误", err)
		return
	}

	user, err := h.userRepo.GetByUsername(req.Username)
	if errors.Is(err, db.ErrUserNotFound) || (err == nil && user.Password != req.Password) {
		fail(c, http.StatusUnauthorized, "用户名或密码错误", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "登录失败", err)
		return
	}

	token, err := newToken()
	if err != nil {
		fail(c, http.StatusInternalServerError, "登录失败", err)
		return
	}
	h.sessions.Set(token, Session{Username: user.Username, Identity: user.Identity}, h.sessionTTL)

	logger.Info("用户 %s 登录成功", user.Username)
	ok(c, "登录成功", gin.H{
		"token":    token,
		"identity": user.Identity,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token != "" {
		h.sessions.Delete(token)
	}
	ok(c, "登出成功", nil)
}

// LookupSession 中间件用的会话查询
func (h *AuthHandler) LookupSession(token string) (Session, bool) {
	v, found := h.sessions.Get(token)
	if !found {
		return Session{}, false
	}
	sess, ok := v.(Session)
	return sess, ok
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成令牌失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
