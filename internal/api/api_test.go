package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat_admin/internal/config"
	"chat_admin/internal/domain"
	"chat_admin/internal/repository"
	"chat_admin/internal/service"
	"chat_admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testServer wires the full HTTP stack against an in-memory database.
// Redis is nil, which disables response caching.
type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Transaction{},
		&domain.Balance{},
		&domain.PluginAuth{},
		&domain.Preset{},
		&domain.ActivityLog{},
	))
	cfg := &config.Config{
		JWTSecret:  "api-test-secret",
		TokenTTL:   time.Hour,
		SessionTTL: 24 * time.Hour,
	}
	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	svc := service.NewAdminService(users, sessions, service.Dependents{
		Messages:      repository.NewMessageRepository(db),
		Transactions:  repository.NewTransactionRepository(db),
		Balances:      repository.NewBalanceRepository(db),
		Presets:       repository.NewPresetRepository(db),
		Conversations: repository.NewConversationRepository(db),
		PluginAuths:   repository.NewPluginAuthRepository(db),
	}, repository.NewActivityLogRepository(db), repository.NewStatsRepository(db))
	r := gin.New()
	RegisterRoutes(r, db, nil, cfg, svc, users, sessions)
	return &testServer{db: db, router: r, cfg: cfg}
}

// seedUser inserts a user with the password "password123"
func (s *testServer) seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Email: email, Name: "Test User", Password: string(hash), Role: role}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func (s *testServer) token(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// do performs a request with an optional bearer token and JSON body
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/user", "", gin.H{
		"email":    "fresh@example.com",
		"name":     "Fresh",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("short password rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/user", "", gin.H{
			"email":    "short@example.com",
			"name":     "Short",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/user", "", gin.H{
			"email":    "FRESH@example.com",
			"name":     "Dup",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login returns both tokens", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/user", "", gin.H{
			"email":    "fresh@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/user", "", gin.H{
			"email":    "fresh@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminGate(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "admin@example.com", domain.RoleAdmin)
	user := s.seedUser(t, "user@example.com", domain.RoleUser)

	t.Run("no token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/users", s.token(t, user.ID), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestListAndSearchEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "admin@example.com", domain.RoleAdmin)
	s.seedUser(t, "alice@example.com", domain.RoleUser)
	token := s.token(t, admin.ID)

	t.Run("listing with role filter", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/users?role=user&sortBy=email&sortOrder=asc", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Users  []service.UserWithStats `json:"users"`
			Total  int64                   `json:"total"`
			Cached bool                    `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 1, resp.Total)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "alice@example.com", resp.Users[0].Email)
		assert.False(t, resp.Cached)
	})

	t.Run("invalid role filter", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/users?role=wizard", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search too short", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/search?q=a", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search match", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/search?q=alice", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})
}

func TestRoleBanDeleteEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "admin@example.com", domain.RoleAdmin)
	target := s.seedUser(t, "target@example.com", domain.RoleUser)
	token := s.token(t, admin.ID)

	t.Run("invalid role body", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", target.ID), token, gin.H{"role": "WIZARD"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("role change", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", target.ID), token, gin.H{"role": "admin"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "updated successfully")
	})

	t.Run("role change on absent user", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/admin/users/9999/role", token, gin.H{"role": "USER"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ban then banned login rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/admin/users/%d/ban", target.ID), token, gin.H{"reason": "abuse"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		login := s.do(t, http.MethodGet, "/user", "", gin.H{
			"email":    "target@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusForbidden, login.Code)
	})

	t.Run("unban restores login", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/admin/users/%d/unban", target.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		login := s.do(t, http.MethodGet, "/user", "", gin.H{
			"email":    "target@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, login.Code)
	})

	t.Run("self delete rejected", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete then 404", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", target.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		again := s.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", target.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

func TestStatsAndActivityEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "admin@example.com", domain.RoleAdmin)
	target := s.seedUser(t, "watched@example.com", domain.RoleUser)
	token := s.token(t, admin.ID)

	// Generate one audit entry
	w := s.do(t, http.MethodPost, fmt.Sprintf("/admin/users/%d/ban", target.ID), token, gin.H{"reason": "x"})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("user stats", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/admin/users/%d/stats", target.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "watched@example.com")
	})

	t.Run("user stats absent", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/users/9999/stats", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("system stats", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/stats", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Stats  service.SystemStats `json:"stats"`
			Cached bool                `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 2, resp.Stats.Overview.TotalUsers)
	})

	t.Run("activity log", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/admin/activity", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user_banned")
	})
}

func TestCreateAndBulkEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "admin@example.com", domain.RoleAdmin)
	u1 := s.seedUser(t, "bulk1@example.com", domain.RoleUser)
	u2 := s.seedUser(t, "bulk2@example.com", domain.RoleUser)
	token := s.token(t, admin.ID)

	t.Run("create user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/admin/users", token, gin.H{
			"email":    "created@example.com",
			"name":     "Created",
			"password": "password123",
			"role":     "admin",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "created@example.com")
	})

	t.Run("create duplicate", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/admin/users", token, gin.H{
			"email":    "created@example.com",
			"name":     "Created",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bulk ban", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/admin/bulk", token, gin.H{
			"action":   "ban",
			"user_ids": []uint{u1.ID, u2.ID, 9999},
			"reason":   "sweep",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result service.BulkResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Len(t, result.Succeeded, 2)
		assert.Len(t, result.Failed, 1)
	})
}
