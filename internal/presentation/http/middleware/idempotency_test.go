package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupIdempotencyRouter(t *testing.T, salonID uuid.UUID) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("salon_id", salonID)
		c.Next()
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}))
	router.POST("/orders", func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"order": calls})
	})
	return router, &calls
}

func TestIdempotencyReplaysResponse(t *testing.T) {
	router, calls := setupIdempotencyRouter(t, uuid.New())

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(first, req)
	assert.Equal(t, 201, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/orders", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(second, req)

	assert.Equal(t, 201, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyDistinctKeysExecuteSeparately(t *testing.T) {
	router, calls := setupIdempotencyRouter(t, uuid.New())

	for _, key := range []string{"key-a", "key-b"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/orders", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
	}
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyKeysAreScopedPerSalon(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("salon_id", uuid.MustParse(c.GetHeader("X-Salon-ID")))
		c.Next()
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}))
	router.POST("/orders", func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"order": calls})
	})

	// Two salons reuse the same key; neither sees the other's replay.
	for _, salonID := range []uuid.UUID{uuid.New(), uuid.New()} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/orders", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		req.Header.Set("X-Salon-ID", salonID.String())
		router.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	}
	assert.Equal(t, 2, calls)

	var stored int64
	require.NoError(t, db.Model(&entity.IdempotencyKey{}).
		Where("key = ?", "shared-key").Count(&stored).Error)
	assert.Equal(t, int64(2), stored)
}

func TestIdempotencyWithoutKeyIsPassthrough(t *testing.T) {
	router, calls := setupIdempotencyRouter(t, uuid.New())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/orders", strings.NewReader("{}"))
		router.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
	}
	assert.Equal(t, 2, *calls)
}
