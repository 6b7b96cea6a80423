package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"civictrack-be/extract"
	"civictrack-be/middlewares"
	"civictrack-be/services"
)

// IssueController exposes the issue lifecycle over HTTP.
type IssueController struct {
	issues    *services.IssueService
	extractor *extract.Client
	logger    *zap.Logger
}

func NewIssueController(issues *services.IssueService, extractor *extract.Client, logger *zap.Logger) *IssueController {
	return &IssueController{issues: issues, extractor: extractor, logger: logger}
}

func issueID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// Create files a new issue for the authenticated citizen.
func (ic *IssueController) Create(c *gin.Context) {
	var input services.CreateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.Create(c.Request.Context(), input, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Issue created successfully",
		"issueId": issue.PublicID(),
		"issue":   issue,
	})
}

// QuickReport runs a free-text complaint through the LLM extractor and
// files the draft through the normal create path, so the draft gets full
// validation.
func (ic *IssueController) QuickReport(c *gin.Context) {
	if ic.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Quick report is not configured"})
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := ic.extractor.ExtractDraft(c.Request.Context(), input.Text)
	if err != nil {
		ic.logger.Error("issue extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not interpret the complaint text"})
		return
	}

	issue, err := ic.issues.Create(c.Request.Context(), *draft, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Issue created successfully",
		"issueId": issue.PublicID(),
		"issue":   issue,
	})
}

// ListForAdmin returns every issue, newest first.
func (ic *IssueController) ListForAdmin(c *gin.Context) {
	principal := middlewares.Principal(c)
	if err := services.Allowed(principal, services.ActionViewAsAdmin, nil); err != nil {
		respondError(c, ic.logger, err)
		return
	}

	issues, err := ic.issues.ListForRole(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// ListForDepartment returns the issues forwarded to the officer's department.
func (ic *IssueController) ListForDepartment(c *gin.Context) {
	principal := middlewares.Principal(c)
	if err := services.Allowed(principal, services.ActionViewAsDepartment, nil); err != nil {
		respondError(c, ic.logger, err)
		return
	}

	issues, err := ic.issues.ListForRole(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// ListMine returns the authenticated citizen's own reports.
func (ic *IssueController) ListMine(c *gin.Context) {
	principal := middlewares.Principal(c)
	if err := services.Allowed(principal, services.ActionViewAsCitizen, nil); err != nil {
		respondError(c, ic.logger, err)
		return
	}

	issues, err := ic.issues.ListForRole(c.Request.Context(), principal)
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// UpdateStatus applies an admin status change and/or department forward.
func (ic *IssueController) UpdateStatus(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input services.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.UpdateStatus(c.Request.Context(), id, input, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// DepartmentUpdate applies a department officer's status change, comment,
// or resolution evidence.
func (ic *IssueController) DepartmentUpdate(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input services.DepartmentUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.DepartmentUpdate(c.Request.Context(), id, input, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Reopen moves a completed issue back into active handling.
func (ic *IssueController) Reopen(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.Reopen(c.Request.Context(), id, input.Comment, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Rate records a satisfaction rating on a completed issue.
func (ic *IssueController) Rate(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input struct {
		Rating int    `json:"rating"`
		Review string `json:"review,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.Rate(c.Request.Context(), id, input.Rating, input.Review, middlewares.Principal(c))
	if err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Delete removes an issue entirely. Admin only.
func (ic *IssueController) Delete(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	if err := ic.issues.Delete(c.Request.Context(), id, middlewares.Principal(c)); err != nil {
		respondError(c, ic.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "message": "Issue deleted successfully"})
}
