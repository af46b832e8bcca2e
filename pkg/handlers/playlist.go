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

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *Handler) CreatePlaylist(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		h.fail(c, response.InvalidArgument("name and description are required"))
		return
	}

	playlist := models.Playlist{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     viewerID(c),
	}
	if err := h.db.Create(&playlist).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *Handler) loadOwnedPlaylist(c *gin.Context, action string) (*models.Playlist, error) {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		return nil, err
	}
	var playlist models.Playlist
	if err := h.db.First(&playlist, playlistID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("playlist not found")
		}
		return nil, err
	}
	if playlist.OwnerID != viewerID(c) {
		return nil, response.Forbidden("only the owner can " + action + " this playlist")
	}
	return &playlist, nil
}

func (h *Handler) UpdatePlaylist(c *gin.Context) {
	playlist, err := h.loadOwnedPlaylist(c, "edit")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		h.fail(c, response.InvalidArgument("name and description are required"))
		return
	}

	err = h.db.Model(playlist).Updates(map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
	}).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *Handler) DeletePlaylist(c *gin.Context) {
	playlist, err := h.loadOwnedPlaylist(c, "delete")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.db.Delete(&models.Playlist{}, "id = ?", playlist.ID).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.db.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistVideo{})

	h.ok(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

// AddVideoToPlaylist appends the video to the playlist's ordered set; adding
// the same video twice is a no-op.
func (h *Handler) AddVideoToPlaylist(c *gin.Context) {
	playlist, err := h.loadOwnedPlaylist(c, "add videos to")
	if err != nil {
		h.fail(c, err)
		return
	}
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
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

	var maxPosition struct{ Position int }
	h.db.Table("playlist_videos").
		Select("COALESCE(MAX(position), 0) AS position").
		Where("playlist_id = ?", playlist.ID).
		Scan(&maxPosition)

	entry := models.PlaylistVideo{
		PlaylistID: playlist.ID,
		VideoID:    videoID,
		Position:   maxPosition.Position + 1,
	}
	if err := h.db.Create(&entry).Error; err != nil && !query.IsUniqueViolation(err) {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, playlist, "Added video to playlist successfully")
}

func (h *Handler) RemoveVideoFromPlaylist(c *gin.Context) {
	playlist, err := h.loadOwnedPlaylist(c, "remove videos from")
	if err != nil {
		h.fail(c, err)
		return
	}
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.db.
		Where("playlist_id = ? AND video_id = ?", playlist.ID, videoID).
		Delete(&models.PlaylistVideo{}).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, playlist, "Removed video from playlist successfully")
}

func (h *Handler) PlaylistDetail(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		h.fail(c, err)
		return
	}
	detail, err := h.queries.PlaylistDetail(playlistID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, detail, "Playlist fetched successfully")
}

func (h *Handler) UserPlaylists(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	playlists, err := h.queries.UserPlaylists(userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, playlists, "User playlists fetched successfully")
}
