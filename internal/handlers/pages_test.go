// internal/handlers/pages_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/services"
)

func setupPageRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Designer{}, &models.Category{}, &models.Tag{},
		&models.Season{}, &models.Material{}, &models.Clothing{},
		&models.ClothingHistory{}, &models.UserPermission{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clothingService := services.NewClothingService(db)
	designerService := services.NewDesignerService(db)
	taxonomyService := services.NewTaxonomyService(db)
	pageHandler := NewPageHandler(clothingService, designerService, taxonomyService)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.GET("/", pageHandler.ClothingListPage)
	r.GET("/clothing/:id", pageHandler.ClothingDetailPage)
	r.GET("/designer/:id", pageHandler.DesignerDetailPage)
	return r
}

func pageRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Page routes answer with HTML even for bad input; the JSON envelope belongs
// to the API alone.
func TestPageMalformedIDRendersErrorPage(t *testing.T) {
	r := setupPageRouter(t)

	for _, path := range []string{"/clothing/not-a-uuid", "/designer/not-a-uuid"} {
		w := pageRequest(t, r, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, w.Body.String(), "Something went wrong", path)
		assert.NotContains(t, w.Body.String(), `"success"`, path)
	}
}

func TestClothingListPageRenders(t *testing.T) {
	r := setupPageRouter(t)

	w := pageRequest(t, r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
