package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== 会话配置 ====================

// SessionConfig 会话 Token 配置
type SessionConfig struct {
	SecretKey  string        // 签名密钥，轮换后所有在线会话立即失效
	TTL        time.Duration // 会话有效期
	Issuer     string        // 签发者
	CookieName string        // 会话 Cookie 名
}

// DefaultSessionConfig 默认配置
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		SecretKey:  "edumall-secret-key-change-in-production",
		TTL:        7 * 24 * time.Hour,
		Issuer:     "edumall",
		CookieName: "session",
	}
}

// 全局配置
var sessionConfig = DefaultSessionConfig()

// SetSessionConfig 设置会话配置
func SetSessionConfig(cfg *SessionConfig) {
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	sessionConfig = cfg
}

// GetSessionConfig 获取会话配置
func GetSessionConfig() *SessionConfig {
	return sessionConfig
}

// ==================== Claims 定义 ====================

// SessionClaims 会话声明，只嵌入身份快照
// 角色等权限信息在每次鉴权时从库里重读，不信任 Token 里的快照
type SessionClaims struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

// IssueSessionToken 签发会话 Token，固定 7 天有效期（取配置）
func IssueSessionToken(accountID int64, email, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionConfig.Issuer,
			Subject:   "session",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionConfig.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sessionConfig.SecretKey))
}

// ==================== Token 解析 ====================

// ParseSessionToken 解析 Token
// 格式错误、签名不符、过期一律返回 error，调用方不区分原因
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(sessionConfig.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Cookie 读写 ====================

// SetSessionCookie 下发会话 Cookie（HttpOnly + SameSite=Lax）
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionConfig.CookieName, token, int(sessionConfig.TTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie 登出时清除 Cookie（MaxAge 置 0）
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionConfig.CookieName, "", 0, "/", "", false, true)
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyAccount = "account"
)

// AuthMiddleware 会话鉴权中间件
// 每次鉴权都按 Token 里的 ID 重读账号，保证角色/委托标记是最新状态
type AuthMiddleware struct {
	accounts repository.AccountRepository
}

// NewAuthMiddleware 创建鉴权中间件
func NewAuthMiddleware(accounts repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// resolve 从请求还原当前账号，任何失败都视为"无会话"
func (m *AuthMiddleware) resolve(c *gin.Context) *model.Account {
	tokenString := m.extractToken(c)
	if tokenString == "" {
		return nil
	}

	claims, err := ParseSessionToken(tokenString)
	if err != nil {
		// 过期/伪造/格式错误，对外表现一致，只记录日志
		log.Debug().Err(err).Msg("会话 Token 校验失败")
		return nil
	}

	account, err := m.accounts.GetByID(c.Request.Context(), claims.AccountID)
	if err != nil || account == nil || !account.IsActive {
		return nil
	}
	return account
}

// extractToken 优先取 Cookie，兼容 Bearer Header（API 调用方）
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionConfig.CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth 要求已登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := m.resolve(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录或会话已失效"})
			c.Abort()
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// RequireAdmin 要求管理员角色
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := m.resolve(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录或会话已失效"})
			c.Abort()
			return
		}
		if !account.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "无权限访问"})
			c.Abort()
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// OptionalAuth 可选认证（不强制登录）
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if account := m.resolve(c); account != nil {
			c.Set(ContextKeyAccount, account)
		}
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// CurrentAccount 从 Context 获取当前账号
func CurrentAccount(c *gin.Context) *model.Account {
	if v, exists := c.Get(ContextKeyAccount); exists {
		if account, ok := v.(*model.Account); ok {
			return account
		}
	}
	return nil
}
