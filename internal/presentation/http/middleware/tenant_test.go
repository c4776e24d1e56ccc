package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
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

var testDSNSeq int

// testDSN returns a uniquely named shared in-memory database so every pooled
// connection sees the same schema.
func testDSN() string {
	testDSNSeq++
	return fmt.Sprintf("file:mwtest%d?mode=memory&cache=shared", testDSNSeq)
}

func setupTenantRouter(t *testing.T) (*gin.Engine, *entity.Salon) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Salon{}))

	salon := &entity.Salon{SalonName: "Glow Studio"}
	require.NoError(t, db.Create(salon).Error)

	router := gin.New()
	router.Use(SalonMiddleware(infraRepo.NewSalonRepository(db)))
	router.GET("/ping", func(c *gin.Context) {
		salonID, ok := infraRepo.GetSalonID(c.Request.Context())
		c.JSON(200, gin.H{"salon_id": salonID, "scoped": ok})
	})
	return router, salon
}

func TestSalonMiddlewareRequiresSalonID(t *testing.T) {
	router, _ := setupTenantRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalonMiddlewareRejectsUnknownSalon(t *testing.T) {
	router, _ := setupTenantRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping?salon_id="+uuid.NewString(), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSalonMiddlewareRejectsMalformedSalonID(t *testing.T) {
	router, _ := setupTenantRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping?salon_id=not-a-uuid", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalonMiddlewarePropagatesSalonContext(t *testing.T) {
	router, salon := setupTenantRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping?salon_id="+salon.ID.String(), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), salon.ID.String())
	assert.Contains(t, w.Body.String(), `"scoped":true`)
}

func TestSalonScopeFailsClosedWithoutContext(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(testDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Customer{}, &entity.Salon{}))

	salon := &entity.Salon{SalonName: "Glow Studio"}
	require.NoError(t, db.Create(salon).Error)
	require.NoError(t, db.Create(&entity.Customer{SalonID: salon.ID, FullName: "Asha"}).Error)

	var count int64
	err = db.Model(&entity.Customer{}).
		Scopes(infraRepo.SalonScope(context.Background())).
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
