package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) CreateTweet(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		h.fail(c, response.InvalidArgument("content is required"))
		return
	}

	tweet := models.Tweet{
		Content: strings.TrimSpace(req.Content),
		OwnerID: viewerID(c),
	}
	if err := h.db.Create(&tweet).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *Handler) UserTweets(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		h.fail(c, err)
		return
	}
	tweets, err := h.queries.UserTweets(userID, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *Handler) loadOwnedTweet(c *gin.Context, action string) (*models.Tweet, error) {
	tweetID, err := pathID(c, "tweetId")
	if err != nil {
		return nil, err
	}
	var tweet models.Tweet
	if err := h.db.First(&tweet, tweetID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("tweet not found")
		}
		return nil, err
	}
	if tweet.OwnerID != viewerID(c) {
		return nil, response.Forbidden("only the owner can " + action + " this tweet")
	}
	return &tweet, nil
}

func (h *Handler) UpdateTweet(c *gin.Context) {
	tweet, err := h.loadOwnedTweet(c, "edit")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		h.fail(c, response.InvalidArgument("content is required"))
		return
	}

	err = h.db.Model(tweet).UpdateColumn("content", strings.TrimSpace(req.Content)).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *Handler) DeleteTweet(c *gin.Context) {
	tweet, err := h.loadOwnedTweet(c, "delete")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.db.Delete(&models.Tweet{}, "id = ?", tweet.ID).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.db.Where("tweet_id = ?", tweet.ID).Delete(&models.Like{})

	h.ok(c, http.StatusOK, gin.H{"tweetId": tweet.ID}, "Tweet deleted successfully")
}
