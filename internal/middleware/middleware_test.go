package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/middleware"
	"github.com/lxKylin/meeting-room/internal/observability"
	"github.com/lxKylin/meeting-room/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubParser 只接受 "good" 和 "admin" 两个 token
type stubParser struct{}

func (stubParser) ParseAccess(token string) (*service.Claims, error) {
	switch token {
	case "good":
		return &service.Claims{UserID: 7, Username: "zhangsan"}, nil
	case "admin":
		return &service.Claims{UserID: 1, Username: "admin", Permissions: []string{domain.PermRoomManage}}, nil
	}
	return nil, errors.New("token is expired")
}

func newGatedRouter(metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	login := middleware.LoginRequired(stubParser{}, metrics)
	r.GET("/api/user/info", login, func(c *gin.Context) {
		id, _ := middleware.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.POST("/api/meeting-room/create", login, middleware.PermissionRequired(domain.PermRoomManage, metrics), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorEnvelope {
	t.Helper()
	var env dto.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLoginRequired(t *testing.T) {
	metrics := observability.NewMetrics()
	r := newGatedRouter(metrics)

	w := doRequest(r, http.MethodGet, "/api/user/info", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeError(t, w)
	assert.Equal(t, middleware.MsgNotAuthenticated, env.Msg)
	assert.Equal(t, "/api/user/info", env.Path)
	assert.NotEmpty(t, env.Timestamp)

	w = doRequest(r, http.MethodGet, "/api/user/info", "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgSessionExpired, decodeError(t, w).Msg)

	w = doRequest(r, http.MethodGet, "/api/user/info", "Token good")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgSessionExpired, decodeError(t, w).Msg)

	w = doRequest(r, http.MethodGet, "/api/user/info", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("missing_token")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AuthRejectionsTotal.WithLabelValues("invalid_token")))
}

func TestPermissionRequired(t *testing.T) {
	r := newGatedRouter(observability.NewMetrics())

	w := doRequest(r, http.MethodPost, "/api/meeting-room/create", "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, middleware.MsgForbidden, decodeError(t, w).Msg)

	w = doRequest(r, http.MethodPost, "/api/meeting-room/create", "Bearer admin")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/meeting-room/create", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "未登录时先返回 401 而不是 403")
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(middleware.RateLimit(client, "test:", 2, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodGet, "/ping", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doRequest(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	key := "test:ratelimit:192.0.2.1"
	assert.True(t, mr.Exists(key))
	assert.True(t, mr.TTL(key) > 0, "窗口计数器必须有过期时间")

	// 窗口结束后计数清零
	mr.FastForward(time.Minute + time.Second)
	w = doRequest(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := gin.New()
	r.Use(middleware.RateLimit(client, "", 10, time.Second))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := doRequest(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := observability.NewMetrics()
	r := gin.New()
	r.Use(middleware.Metrics(metrics))
	r.GET("/api/meeting-room/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	doRequest(r, http.MethodGet, "/api/meeting-room/1", "")
	doRequest(r, http.MethodGet, "/api/meeting-room/2", "")
	doRequest(r, http.MethodGet, "/nowhere", "")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/meeting-room/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS("http://example.com"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, http.MethodOptions, "/ping", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
