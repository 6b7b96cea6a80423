package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"civictrack-be/middlewares"
	"civictrack-be/models"
	"civictrack-be/services"
	"civictrack-be/store"
)

// AdminController covers department and account management.
type AdminController struct {
	departments *services.DepartmentService
	users       store.UserStore
	logger      *zap.Logger
}

func NewAdminController(departments *services.DepartmentService, users store.UserStore, logger *zap.Logger) *AdminController {
	return &AdminController{departments: departments, users: users, logger: logger}
}

// CreateDepartment registers a new department.
func (ac *AdminController) CreateDepartment(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dept, err := ac.departments.Create(c.Request.Context(), input.Name, input.Description, middlewares.Principal(c))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// ListDepartments returns every department ordered by name.
func (ac *AdminController) ListDepartments(c *gin.Context) {
	depts, err := ac.departments.List(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

// CreateDepartmentUser creates an officer account bound to a department.
func (ac *AdminController) CreateDepartmentUser(c *gin.Context) {
	var input struct {
		Name         string `json:"name" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=6"`
		DepartmentID string `json:"departmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deptID, err := primitive.ObjectIDFromHex(input.DepartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department id"})
		return
	}

	ctx := c.Request.Context()
	dept, err := ac.departments.GetByID(ctx, deptID)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	if _, err := ac.users.FindByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		ac.logger.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := &models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		Role:       models.RoleDepartment,
		Department: &dept.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := user.HashPassword(); err != nil {
		ac.logger.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if err := ac.users.Insert(ctx, user); err != nil {
		ac.logger.Error("user insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "departmentName": dept.Name})
}

// ListDepartmentUsers returns every officer account.
func (ac *AdminController) ListDepartmentUsers(c *gin.Context) {
	users, err := ac.users.FindByRole(c.Request.Context(), models.RoleDepartment)
	if err != nil {
		ac.logger.Error("user list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateDepartmentUser changes an officer's name, email, or department.
func (ac *AdminController) UpdateDepartmentUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Name         *string `json:"name,omitempty"`
		Email        *string `json:"email,omitempty"`
		DepartmentID *string `json:"departmentId,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.users.FindByID(ctx, id)
	if err != nil || user.Role != models.RoleDepartment {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department user not found"})
		return
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := ac.users.FindByEmail(ctx, *input.Email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Another user with this email exists"})
			return
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.DepartmentID != nil {
		deptID, err := primitive.ObjectIDFromHex(*input.DepartmentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department id"})
			return
		}
		dept, err := ac.departments.GetByID(ctx, deptID)
		if err != nil {
			respondError(c, ac.logger, err)
			return
		}
		user.Department = &dept.ID
	}

	user.UpdatedAt = time.Now()
	if err := ac.users.Replace(ctx, user); err != nil {
		ac.logger.Error("user update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteDepartmentUser removes an officer account.
func (ac *AdminController) DeleteDepartmentUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	ctx := c.Request.Context()
	user, err := ac.users.FindByID(ctx, id)
	if err != nil || user.Role != models.RoleDepartment {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department user not found"})
		return
	}

	if err := ac.users.Delete(ctx, id); err != nil {
		ac.logger.Error("user delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Department user deleted"})
}

// CreateAdminUser creates another administrator account.
func (ac *AdminController) CreateAdminUser(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.HashPassword(); err != nil {
		ac.logger.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if err := ac.users.Insert(ctx, user); err != nil {
		ac.logger.Error("user insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
