package query

import (
	"time"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

// TweetView is the fixed tweet-feed projection.
type TweetView struct {
	ID         uint         `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

type tweetRow struct {
	ID         uint
	Content    string
	CreatedAt  time.Time
	LikesCount int64
	IsLiked    bool
	OwnerRow
}

// UserTweets lists a user's tweets newest first with like aggregates.
func (b *Builder) UserTweets(userID, viewerID uint) ([]TweetView, error) {
	var user models.User
	if err := b.db.Select("id").First(&user, userID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("user not found")
		}
		return nil, err
	}

	var rows []tweetRow
	err := b.db.Table("tweets").
		Select(`tweets.id, tweets.content, tweets.created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes
				WHERE likes.tweet_id = tweets.id
				AND likes.liked_by_id = ?) AS is_liked, `+ownerColumns, viewerID).
		Joins("JOIN users ON users.id = tweets.owner_id").
		Where("tweets.owner_id = ?", userID).
		Order("tweets.created_at DESC, tweets.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tweets := make([]TweetView, 0, len(rows))
	for _, r := range rows {
		tweets = append(tweets, TweetView{
			ID:         r.ID,
			Content:    r.Content,
			CreatedAt:  r.CreatedAt,
			LikesCount: r.LikesCount,
			IsLiked:    r.IsLiked,
			Owner:      r.OwnerRow.summary(),
		})
	}
	return tweets, nil
}
