package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ToggleVideoLike(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		h.fail(c, err)
		return
	}
	liked, err := h.queries.ToggleVideoLike(videoID, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Video like toggled successfully")
}

func (h *Handler) ToggleCommentLike(c *gin.Context) {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		h.fail(c, err)
		return
	}
	liked, err := h.queries.ToggleCommentLike(commentID, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Comment like toggled successfully")
}

func (h *Handler) ToggleTweetLike(c *gin.Context) {
	tweetID, err := pathID(c, "tweetId")
	if err != nil {
		h.fail(c, err)
		return
	}
	liked, err := h.queries.ToggleTweetLike(tweetID, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Tweet like toggled successfully")
}

func (h *Handler) LikedVideos(c *gin.Context) {
	videos, err := h.queries.LikedVideos(viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, videos, "Liked videos fetched successfully")
}
