package query

import (
	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

// toggleLike inserts the like and lets the store's uniqueness constraint
// decide: a conflict means the like already existed, so the toggle removes
// it instead. Two concurrent toggles cannot both insert.
func (b *Builder) toggleLike(like models.Like, cond string, args ...interface{}) (bool, error) {
	err := b.db.Create(&like).Error
	if err == nil {
		return true, nil
	}
	if !IsUniqueViolation(err) {
		return false, err
	}
	if err := b.db.Where(cond, args...).Delete(&models.Like{}).Error; err != nil {
		return false, err
	}
	return false, nil
}

// ToggleVideoLike flips the viewer's like on a video and reports the new
// state.
func (b *Builder) ToggleVideoLike(videoID, viewerID uint) (bool, error) {
	var video models.Video
	if err := b.db.Select("id").First(&video, videoID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, response.NotFound("video not found")
		}
		return false, err
	}
	return b.toggleLike(
		models.Like{VideoID: &videoID, LikedByID: viewerID},
		"video_id = ? AND liked_by_id = ?", videoID, viewerID,
	)
}

func (b *Builder) ToggleCommentLike(commentID, viewerID uint) (bool, error) {
	var comment models.Comment
	if err := b.db.Select("id").First(&comment, commentID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, response.NotFound("comment not found")
		}
		return false, err
	}
	return b.toggleLike(
		models.Like{CommentID: &commentID, LikedByID: viewerID},
		"comment_id = ? AND liked_by_id = ?", commentID, viewerID,
	)
}

func (b *Builder) ToggleTweetLike(tweetID, viewerID uint) (bool, error) {
	var tweet models.Tweet
	if err := b.db.Select("id").First(&tweet, tweetID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, response.NotFound("tweet not found")
		}
		return false, err
	}
	return b.toggleLike(
		models.Like{TweetID: &tweetID, LikedByID: viewerID},
		"tweet_id = ? AND liked_by_id = ?", tweetID, viewerID,
	)
}

// LikedVideos lists the videos the viewer has liked, most recent like first.
func (b *Builder) LikedVideos(viewerID uint) ([]VideoSummary, error) {
	var rows []VideoRow
	err := b.db.Table("likes").
		Select(videoColumns+", "+ownerColumns).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("likes.liked_by_id = ? AND likes.video_id IS NOT NULL", viewerID).
		Order("likes.created_at DESC, likes.id DESC").
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
