package query

import (
	"time"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

// ToggleSubscription flips the subscriber's subscription to a channel and
// reports the new state. Subscribing to yourself is rejected.
func (b *Builder) ToggleSubscription(subscriberID, channelID uint) (bool, error) {
	if subscriberID == channelID {
		return false, response.InvalidArgument("cannot subscribe to your own channel")
	}
	var channel models.User
	if err := b.db.Select("id").First(&channel, channelID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, response.NotFound("channel not found")
		}
		return false, err
	}

	sub := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	err := b.db.Create(&sub).Error
	if err == nil {
		return true, nil
	}
	if !IsUniqueViolation(err) {
		return false, err
	}
	err = b.db.
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{}).Error
	if err != nil {
		return false, err
	}
	return false, nil
}

// SubscriberView is one flat record per subscriber of a channel, including
// whether the channel subscribes back and the subscriber's own audience.
type SubscriberView struct {
	ID                     uint   `json:"id"`
	Username               string `json:"username"`
	FullName               string `json:"fullName"`
	AvatarURL              string `json:"avatar"`
	SubscribedToSubscriber bool   `json:"subscribedToSubscriber"`
	SubscribersCount       int64  `json:"subscribersCount"`
}

// ChannelSubscribers lists the users subscribed to a channel.
func (b *Builder) ChannelSubscribers(channelID uint) ([]SubscriberView, error) {
	var channel models.User
	if err := b.db.Select("id").First(&channel, channelID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("channel not found")
		}
		return nil, err
	}

	subscribers := []SubscriberView{}
	err := b.db.Table("subscriptions").
		Select(`users.id, users.username, users.full_name,
			users.avatar_url AS avatar_url,
			EXISTS(SELECT 1 FROM subscriptions back
				WHERE back.channel_id = users.id
				AND back.subscriber_id = ?) AS subscribed_to_subscriber,
			(SELECT COUNT(*) FROM subscriptions audience
				WHERE audience.channel_id = users.id) AS subscribers_count`, channelID).
		Joins("JOIN users ON users.id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC, subscriptions.id DESC").
		Scan(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

// VideoSnippet is the compact video projection embedded in channel lists.
type VideoSnippet struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MediaURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	OwnerID      uint      `json:"ownerId"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubscribedChannelView is one flat record per channel the user follows,
// with that channel's latest published video when it has one.
type SubscribedChannelView struct {
	ID          uint          `json:"id"`
	Username    string        `json:"username"`
	FullName    string        `json:"fullName"`
	AvatarURL   string        `json:"avatar"`
	LatestVideo *VideoSnippet `json:"latestVideo"`
}

type subscribedChannelRow struct {
	ID                 uint
	Username           string
	FullName           string
	AvatarURL          string
	LatestID           *uint
	LatestTitle        *string
	LatestDescription  *string
	LatestMediaURL     *string
	LatestThumbnailURL *string
	LatestDuration     *float64
	LatestViews        *int64
	LatestCreatedAt    *time.Time
}

// SubscribedChannels lists the channels a user follows.
func (b *Builder) SubscribedChannels(subscriberID uint) ([]SubscribedChannelView, error) {
	var subscriber models.User
	if err := b.db.Select("id").First(&subscriber, subscriberID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("subscriber not found")
		}
		return nil, err
	}

	var rows []subscribedChannelRow
	err := b.db.Table("subscriptions").
		Select(`users.id, users.username, users.full_name,
			users.avatar_url AS avatar_url,
			latest.id AS latest_id, latest.title AS latest_title,
			latest.description AS latest_description,
			latest.media_url AS latest_media_url,
			latest.thumbnail_url AS latest_thumbnail_url,
			latest.duration AS latest_duration,
			latest.views AS latest_views,
			latest.created_at AS latest_created_at`).
		Joins("JOIN users ON users.id = subscriptions.channel_id").
		Joins(`LEFT JOIN videos latest ON latest.id = (
			SELECT v.id FROM videos v
			WHERE v.owner_id = users.id AND v.is_published = 1
			ORDER BY v.created_at DESC, v.id DESC LIMIT 1)`).
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC, subscriptions.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	channels := make([]SubscribedChannelView, 0, len(rows))
	for _, r := range rows {
		view := SubscribedChannelView{
			ID:        r.ID,
			Username:  r.Username,
			FullName:  r.FullName,
			AvatarURL: r.AvatarURL,
		}
		if r.LatestID != nil {
			view.LatestVideo = &VideoSnippet{
				ID:           *r.LatestID,
				Title:        *r.LatestTitle,
				Description:  *r.LatestDescription,
				MediaURL:     *r.LatestMediaURL,
				ThumbnailURL: *r.LatestThumbnailURL,
				OwnerID:      r.ID,
				Duration:     *r.LatestDuration,
				Views:        *r.LatestViews,
				CreatedAt:    *r.LatestCreatedAt,
			}
		}
		channels = append(channels, view)
	}
	return channels, nil
}
