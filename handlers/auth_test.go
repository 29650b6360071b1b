package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/estate-billing/config"
	"github.com/yourusername/estate-billing/models"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	cfg := &config.Config{JWTSecret: "test-secret", JWTRefreshSecret: "test-refresh-secret"}
	handler := NewAuthHandler(db, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register/admin", handler.RegisterAdmin)
	router.POST("/auth/register/tenant", handler.RegisterTenant)
	router.POST("/auth/login/:type", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	return router
}

func TestRegisterAndLoginTenant(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	t.Run("Register", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register/tenant", gin.H{
			"name":      "Alex Johnson",
			"email":     "alex@estate.test",
			"password":  "supersecret",
			"unit":      "402",
			"block":     "B",
			"unit_type": "two_bedroom",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var tenant models.Tenant
		assert.NoError(t, db.Where("email = ?", "alex@estate.test").First(&tenant).Error)
		assert.Equal(t, models.UnitTypeTwoBedroom, tenant.UnitType)
		assert.NotEqual(t, "supersecret", tenant.PasswordHash)
		assert.True(t, tenant.IsActive)
	})

	t.Run("Duplicate Email Conflicts", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register/tenant", gin.H{
			"name":     "Alex Johnson",
			"email":    "alex@estate.test",
			"password": "supersecret",
			"unit":     "402",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Short Password Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register/tenant", gin.H{
			"name":     "Sarah Smith",
			"email":    "sarah@estate.test",
			"password": "short",
			"unit":     "305",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login Succeeds", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login/tenant", gin.H{
			"email":    "alex@estate.test",
			"password": "supersecret",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.NotEmpty(t, resp["refresh_token"])
	})

	t.Run("Wrong Password And Unknown Email Look Identical", func(t *testing.T) {
		wrong := doJSON(router, "POST", "/auth/login/tenant", gin.H{
			"email":    "alex@estate.test",
			"password": "wrongpassword",
		})
		unknown := doJSON(router, "POST", "/auth/login/tenant", gin.H{
			"email":    "nobody@estate.test",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("Inactive Account Forbidden", func(t *testing.T) {
		db.Model(&models.Tenant{}).Where("email = ?", "alex@estate.test").Update("is_active", false)
		defer db.Model(&models.Tenant{}).Where("email = ?", "alex@estate.test").Update("is_active", true)

		w := doJSON(router, "POST", "/auth/login/tenant", gin.H{
			"email":    "alex@estate.test",
			"password": "supersecret",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown Login Type Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login/robot", gin.H{
			"email":    "alex@estate.test",
			"password": "supersecret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := doJSON(router, "POST", "/auth/register/admin", gin.H{
		"name":     "Estate Manager",
		"email":    "manager@estate.test",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/auth/login/admin", gin.H{
		"email":    "manager@estate.test",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var login map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	refresh, _ := login["refresh_token"].(string)
	assert.NotEmpty(t, refresh)

	t.Run("Valid Refresh Issues New Pair", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/refresh", gin.H{"refresh_token": refresh})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.NotEmpty(t, resp["refresh_token"])
	})

	t.Run("Garbage Token Rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/refresh", gin.H{"refresh_token": "not-a-jwt"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Access Token Is Not A Refresh Token", func(t *testing.T) {
		access, _ := login["access_token"].(string)
		w := doJSON(router, "POST", "/auth/refresh", gin.H{"refresh_token": access})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Deactivated Account Cannot Refresh", func(t *testing.T) {
		db.Model(&models.User{}).Where("email = ?", "manager@estate.test").Update("is_active", false)
		defer db.Model(&models.User{}).Where("email = ?", "manager@estate.test").Update("is_active", true)

		w := doJSON(router, "POST", "/auth/refresh", gin.H{"refresh_token": refresh})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
