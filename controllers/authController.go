package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"civictrack-be/middlewares"
	"civictrack-be/models"
	"civictrack-be/store"
	authUtils "civictrack-be/utils"
)

// AuthController handles registration, login and session introspection.
type AuthController struct {
	users       store.UserStore
	departments store.DepartmentStore
	jwtSecret   string
	logger      *zap.Logger
}

func NewAuthController(users store.UserStore, departments store.DepartmentStore, jwtSecret string, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, departments: departments, jwtSecret: jwtSecret, logger: logger}
}

func (ac *AuthController) issueToken(c *gin.Context, user *models.User) (string, bool) {
	token, err := authUtils.GenerateToken(ac.jwtSecret, user.ID.Hex())
	if err != nil {
		ac.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return "", false
	}
	c.SetCookie("jwt", token, int((72 * time.Hour).Seconds()), "/", "", false, true)
	return token, true
}

// Register creates a citizen account.
func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.users.FindByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		ac.logger.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	now := time.Now()
	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Role:      models.RoleCitizen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.HashPassword(); err != nil {
		ac.logger.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	if err := ac.users.Insert(ctx, user); err != nil {
		ac.logger.Error("user insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	token, ok := ac.issueToken(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login authenticates any role by email and password.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil || !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, ok := ac.issueToken(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the authenticated user, with the department name resolved
// for department officers.
func (ac *AuthController) GetMe(c *gin.Context) {
	principal := middlewares.Principal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := ac.users.FindByID(c.Request.Context(), principal.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response := gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
	if user.Department != nil {
		response["department"] = user.Department
		if dept, err := ac.departments.FindByID(c.Request.Context(), *user.Department); err == nil {
			response["departmentName"] = dept.Name
		}
	}
	c.JSON(http.StatusOK, response)
}
