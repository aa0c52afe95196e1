package handlers

import (
	"sunnah-steps/helper"
	"sunnah-steps/middleware"
	"sunnah-steps/models"
	"sunnah-steps/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	progressService services.ProgressService
	Helper          *helper.HTTPHelper
}

func NewDashboardHandler(progressService services.ProgressService, h *helper.HTTPHelper) *DashboardHandler {
	return &DashboardHandler{progressService: progressService, Helper: h}
}

func (h *DashboardHandler) GetProgress(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.Helper.SendErrorFromErr(c, models.ErrNoToken)
		return
	}

	progress, err := h.progressService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Progress loaded", models.ProgressResponse{Progress: progress})
}

func (h *DashboardHandler) ToggleBookmark(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.Helper.SendErrorFromErr(c, models.ErrNoToken)
		return
	}

	var req models.BookmarkRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	result, err := h.progressService.ToggleBookmark(c.Request.Context(), userID, req.ArticleID)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	message := "Bookmark removed"
	if result.Bookmarked {
		message = "Bookmark added"
	}
	h.Helper.SendSuccess(c, message, result)
}

func (h *DashboardHandler) RecordRead(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.Helper.SendErrorFromErr(c, models.ErrNoToken)
		return
	}

	var req models.RecordReadRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	progress, err := h.progressService.RecordRead(c.Request.Context(), userID, req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Reading recorded", models.ProgressResponse{Progress: progress})
}
