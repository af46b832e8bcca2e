package query

import (
	"github.com/jinzhu/gorm"

	"vidtube/pkg/response"
)

// ChannelProfile is the public face of a user looked up by username.
type ChannelProfile struct {
	ID                        uint   `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	AvatarURL                 string `json:"avatar"`
	CoverURL                  string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

func (b *Builder) ChannelProfile(username string, viewerID uint) (*ChannelProfile, error) {
	var profile ChannelProfile
	err := b.db.Raw(`
		SELECT users.id, users.username, users.full_name,
			users.avatar_url AS avatar_url, users.cover_url AS cover_url,
			(SELECT COUNT(*) FROM subscriptions
				WHERE subscriptions.channel_id = users.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions
				WHERE subscriptions.subscriber_id = users.id) AS channels_subscribed_to_count,
			EXISTS(SELECT 1 FROM subscriptions
				WHERE subscriptions.channel_id = users.id
				AND subscriptions.subscriber_id = ?) AS is_subscribed
		FROM users
		WHERE users.username = ?`, viewerID, username).
		Scan(&profile).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, response.NotFound("channel does not exist")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// WatchHistoryFeed lists the viewer's watched videos, most recent first.
func (b *Builder) WatchHistoryFeed(userID uint) ([]VideoSummary, error) {
	var rows []VideoRow
	err := b.db.Table("watch_histories").
		Select(videoColumns+", "+ownerColumns).
		Joins("JOIN videos ON videos.id = watch_histories.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_histories.user_id = ?", userID).
		Order("watch_histories.watched_at DESC, watch_histories.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	videos := make([]VideoSummary, 0, len(rows))
	for _, r := range rows {
		videos = append(videos, r.summary())
	}
	return videos, nil
}
