package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/query"
	"vidtube/pkg/response"
)

func (h *Handler) VideoComments(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := query.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.queries.VideoComments(videoID, viewerID(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, comments, "Comments fetched successfully")
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) AddComment(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		h.fail(c, response.InvalidArgument("content is required"))
		return
	}

	var video models.Video
	if err := h.db.Select("id").First(&video, videoID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			h.fail(c, response.NotFound("video not found"))
			return
		}
		h.fail(c, err)
		return
	}

	comment := models.Comment{
		Content: strings.TrimSpace(req.Content),
		VideoID: videoID,
		OwnerID: viewerID(c),
	}
	if err := h.db.Create(&comment).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *Handler) loadOwnedComment(c *gin.Context, action string) (*models.Comment, error) {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("comment not found")
		}
		return nil, err
	}
	if comment.OwnerID != viewerID(c) {
		return nil, response.Forbidden("only the owner can " + action + " this comment")
	}
	return &comment, nil
}

// UpdateComment replaces the content and returns the refreshed record.
func (h *Handler) UpdateComment(c *gin.Context) {
	comment, err := h.loadOwnedComment(c, "edit")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		h.fail(c, response.InvalidArgument("content is required"))
		return
	}

	err = h.db.Model(comment).UpdateColumn("content", strings.TrimSpace(req.Content)).Error
	if err != nil {
		h.fail(c, err)
		return
	}

	var updated models.Comment
	if err := h.db.First(&updated, comment.ID).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, updated, "Comment edited successfully")
}

func (h *Handler) DeleteComment(c *gin.Context) {
	comment, err := h.loadOwnedComment(c, "delete")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.db.Delete(&models.Comment{}, "id = ?", comment.ID).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.db.Where("comment_id = ?", comment.ID).Delete(&models.Like{})

	h.ok(c, http.StatusOK, gin.H{"commentId": comment.ID}, "Comment deleted successfully")
}
