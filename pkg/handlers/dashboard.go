package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ChannelStats(c *gin.Context) {
	stats, err := h.queries.ChannelStats(viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *Handler) ChannelVideos(c *gin.Context) {
	videos, err := h.queries.ChannelVideos(viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, videos, "Channel videos fetched successfully")
}
