package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"civictrack-be/middlewares"
	"civictrack-be/services"
)

// AlertController exposes announcement banners.
type AlertController struct {
	alerts *services.AlertService
	logger *zap.Logger
}

func NewAlertController(alerts *services.AlertService, logger *zap.Logger) *AlertController {
	return &AlertController{alerts: alerts, logger: logger}
}

func (ac *AlertController) Create(c *gin.Context) {
	var input services.CreateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := ac.alerts.Create(c.Request.Context(), input, middlewares.Principal(c))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (ac *AlertController) List(c *gin.Context) {
	alerts, err := ac.alerts.List(c.Request.Context(), middlewares.Principal(c))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// ListActive returns the banners to display right now. No auth required.
func (ac *AlertController) ListActive(c *gin.Context) {
	alerts, err := ac.alerts.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (ac *AlertController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert id"})
		return
	}

	var input services.UpdateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := ac.alerts.Update(c.Request.Context(), id, input, middlewares.Principal(c))
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (ac *AlertController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert id"})
		return
	}

	if err := ac.alerts.Delete(c.Request.Context(), id, middlewares.Principal(c)); err != nil {
		respondError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Alert deleted successfully"})
}
