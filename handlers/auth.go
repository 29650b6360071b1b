package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/estate-billing/config"
	"github.com/yourusername/estate-billing/middleware"
	"github.com/yourusername/estate-billing/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		DB:  db,
		Cfg: cfg,
	}
}

type RegisterAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		WalletBalance: decimal.Zero,
		IsActive:      true,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

type RegisterTenantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	Unit         string   `json:"unit" binding:"required"`
	Block        string   `json:"block"`
	UnitType     string   `json:"unit_type" binding:"omitempty,oneof=studio one_bedroom two_bedroom three_bedroom duplex"`
	FloorAreaSqm *float64 `json:"floor_area_sqm" binding:"omitempty,gt=0"`
}

func (h *AuthHandler) RegisterTenant(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	unitType := req.UnitType
	if unitType == "" {
		unitType = models.UnitTypeStudio
	}

	tenant := models.Tenant{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Unit:          req.Unit,
		Block:         req.Block,
		UnitType:      unitType,
		WalletBalance: decimal.Zero,
		IsActive:      true,
	}
	if req.FloorAreaSqm != nil {
		tenant.FloorAreaSqm = decimal.NewFromFloat(*req.FloorAreaSqm).Round(2)
	}

	if err := h.DB.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": tenant})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the tenant or admin table depending on the
// :type path parameter. Missing accounts and wrong passwords share one
// response so callers cannot probe which emails exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		accountID uint
		role      string
		hash      string
		active    bool
		account   interface{}
	)

	switch c.Param("type") {
	case "tenant":
		var tenant models.Tenant
		if err := h.DB.Where("email = ?", req.Email).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		accountID, role, hash, active, account = tenant.ID, models.RoleResident, tenant.PasswordHash, tenant.IsActive, tenant
	case "admin":
		var user models.User
		if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		accountID, role, hash, active, account = user.ID, user.Role, user.PasswordHash, user.IsActive, user
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login type must be tenant or admin"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		return
	}

	accessToken, err := middleware.GenerateToken(accountID, role, h.Cfg.JWTSecret, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	refreshToken, err := middleware.GenerateToken(accountID, role, h.Cfg.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"user":          account,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// RefreshToken request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := middleware.ParseClaims(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token", "code": "InvalidToken"})
		return
	}

	// The account must still exist and be active before new tokens issue.
	if claims.Role == models.RoleResident {
		var tenant models.Tenant
		if err := h.DB.First(&tenant, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if !tenant.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}
	} else {
		var user models.User
		if err := h.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}
	}

	accessToken, err := middleware.GenerateToken(claims.UserID, claims.Role, h.Cfg.JWTSecret, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := middleware.GenerateToken(claims.UserID, claims.Role, h.Cfg.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
