package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/service"
)

// gin.Context 中保存身份信息的 key
const (
	ContextUserIDKey = "user_id"
	ContextClaimsKey = "claims"
)

// 鉴权失败时返回给客户端的消息
const (
	MsgNotAuthenticated = "not authenticated"
	MsgSessionExpired   = "session expired, please re-authenticate"
	MsgForbidden        = "forbidden"
)

// TokenParser 校验 access token
type TokenParser interface {
	ParseAccess(token string) (*service.Claims, error)
}

// RejectionRecorder 统计被拒绝的请求
type RejectionRecorder interface {
	RecordAuthRejection(reason string)
}

// ErrMissingAuthHeader 表示缺少 Authorization 头
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// ErrMalformedAuthHeader 表示 Authorization 头不是 "Bearer <token>"
var ErrMalformedAuthHeader = errors.New("malformed Authorization header")

// LoginRequired 校验 Bearer token 并把身份写入上下文。
func LoginRequired(parser TokenParser, rec RejectionRecorder) gin.HandlerFunc {
	if parser == nil {
		panic("TokenParser cannot be nil for LoginRequired middleware")
	}
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				reject(c, rec, http.StatusUnauthorized, MsgNotAuthenticated, "missing_token")
				return
			}
			logrus.WithError(err).Warn("Auth middleware: Malformed Authorization header")
			reject(c, rec, http.StatusUnauthorized, MsgSessionExpired, "malformed_token")
			return
		}

		claims, err := parser.ParseAccess(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: Invalid token")
			reject(c, rec, http.StatusUnauthorized, MsgSessionExpired, "invalid_token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextClaimsKey, claims)
		logrus.WithField("user_id", claims.UserID).Debug("Auth middleware: User authenticated via JWT")
		c.Next()
	}
}

// PermissionRequired 要求当前身份拥有指定权限码，必须放在 LoginRequired 之后。
func PermissionRequired(code string, rec RejectionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			reject(c, rec, http.StatusUnauthorized, MsgNotAuthenticated, "missing_identity")
			return
		}
		if !claims.HasPermission(code) {
			logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "permission": code}).Warn("Auth middleware: Permission denied")
			reject(c, rec, http.StatusForbidden, MsgForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// CurrentClaims 取出 LoginRequired 写入的身份
func CurrentClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok && claims != nil
}

// CurrentUserID 取出当前用户 ID
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

func reject(c *gin.Context, rec RejectionRecorder, status int, msg, reason string) {
	if rec != nil {
		rec.RecordAuthRejection(reason)
	}
	c.AbortWithStatusJSON(status, dto.NewError(status, msg, c.Request.URL.Path))
}

// extractToken 从 Gin 上下文中提取 Bearer Token
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedAuthHeader
	}
	return parts[1], nil
}
