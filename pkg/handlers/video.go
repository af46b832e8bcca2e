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

// VideoFeed serves the public feed with optional search, owner filter,
// sorting and pagination.
func (h *Handler) VideoFeed(c *gin.Context) {
	page, err := query.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		h.fail(c, err)
		return
	}

	opts := query.FeedOptions{
		Search:   c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		UserID:   c.Query("userId"),
	}
	feed, err := h.queries.VideoFeed(opts, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, feed, "Videos fetched successfully")
}

// PublishVideo uploads the media and thumbnail to the asset host and
// creates the video as an unpublished draft.
func (h *Handler) PublishVideo(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		h.fail(c, response.InvalidArgument("title and description are required"))
		return
	}

	media, duration, err := h.storeFormFile(c, "videoFile", "videos", true)
	if err != nil {
		h.fail(c, err)
		return
	}
	thumbnail, _, err := h.storeFormFile(c, "thumbnail", "thumbnails", false)
	if err != nil {
		h.fail(c, err)
		return
	}

	video := models.Video{
		Title:        title,
		Description:  description,
		MediaURL:     media.URL,
		MediaKey:     media.Key,
		ThumbnailURL: thumbnail.URL,
		ThumbnailKey: thumbnail.Key,
		Duration:     duration,
		IsPublished:  false,
		OwnerID:      viewerID(c),
	}
	if err := h.db.Create(&video).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, video, "Video uploaded successfully")
}

// VideoDetail returns one video with its aggregates; a successful fetch
// bumps the view counter and records watch history for the viewer.
func (h *Handler) VideoDetail(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
		return
	}

	detail, err := h.queries.VideoDetail(videoID, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.queries.MarkViewed(videoID, viewerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, detail, "Video details fetched successfully")
}

func (h *Handler) loadOwnedVideo(c *gin.Context, action string) (*models.Video, error) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		return nil, err
	}
	var video models.Video
	if err := h.db.First(&video, videoID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("video not found")
		}
		return nil, err
	}
	if video.OwnerID != viewerID(c) {
		return nil, response.Forbidden("only the owner can " + action + " this video")
	}
	return &video, nil
}

// UpdateVideo changes title/description and optionally swaps the thumbnail,
// deleting the replaced asset afterwards.
func (h *Handler) UpdateVideo(c *gin.Context) {
	video, err := h.loadOwnedVideo(c, "update")
	if err != nil {
		h.fail(c, err)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		h.fail(c, response.InvalidArgument("title and description are required"))
		return
	}

	updates := map[string]interface{}{
		"title":       title,
		"description": description,
	}
	oldThumbnailKey := ""
	if _, err := c.FormFile("thumbnail"); err == nil {
		thumbnail, _, err := h.storeFormFile(c, "thumbnail", "thumbnails", false)
		if err != nil {
			h.fail(c, err)
			return
		}
		oldThumbnailKey = video.ThumbnailKey
		updates["thumbnail_url"] = thumbnail.URL
		updates["thumbnail_key"] = thumbnail.Key
	}

	if err := h.db.Model(video).Updates(updates).Error; err != nil {
		h.fail(c, err)
		return
	}
	if oldThumbnailKey != "" {
		h.assets.Delete(oldThumbnailKey)
	}
	h.ok(c, http.StatusOK, video, "Video updated successfully")
}

// DeleteVideo removes the video, its assets, and every comment and like
// hanging off it. The cleanup steps are best effort: there is no
// multi-table transaction guarantee behind them.
func (h *Handler) DeleteVideo(c *gin.Context) {
	video, err := h.loadOwnedVideo(c, "delete")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.db.Delete(&models.Video{}, "id = ?", video.ID).Error; err != nil {
		h.fail(c, err)
		return
	}

	if video.ThumbnailKey != "" {
		h.assets.Delete(video.ThumbnailKey)
	}
	if video.MediaKey != "" {
		h.assets.Delete(video.MediaKey)
	}

	h.db.Where("comment_id IN (SELECT id FROM comments WHERE video_id = ?)", video.ID).
		Delete(&models.Like{})
	h.db.Where("video_id = ?", video.ID).Delete(&models.Like{})
	h.db.Where("video_id = ?", video.ID).Delete(&models.Comment{})

	h.ok(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

func (h *Handler) TogglePublishStatus(c *gin.Context) {
	video, err := h.loadOwnedVideo(c, "toggle publish status of")
	if err != nil {
		h.fail(c, err)
		return
	}

	published := !video.IsPublished
	if err := h.db.Model(video).UpdateColumn("is_published", published).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"isPublished": published}, "Video publish toggled successfully")
}
