package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ToggleSubscription(c *gin.Context) {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		h.fail(c, err)
		return
	}
	subscribed, err := h.queries.ToggleSubscription(viewerID(c), channelID)
	if err != nil {
		h.fail(c, err)
		return
	}
	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	h.ok(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *Handler) ChannelSubscribers(c *gin.Context) {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		h.fail(c, err)
		return
	}
	subscribers, err := h.queries.ChannelSubscribers(channelID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *Handler) SubscribedChannels(c *gin.Context) {
	subscriberID, err := pathID(c, "subscriberId")
	if err != nil {
		h.fail(c, err)
		return
	}
	channels, err := h.queries.SubscribedChannels(subscriberID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
