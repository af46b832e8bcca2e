package query

import (
	"time"

	"vidtube/pkg/models"
)

// ChannelStats is the dashboard rollup for one channel. A channel with no
// videos reports zeros; the aggregate never fails on an empty set.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
}

func (b *Builder) ChannelStats(userID uint) (ChannelStats, error) {
	var stats ChannelStats
	err := b.db.Model(&models.Subscription{}).
		Where("channel_id = ?", userID).
		Count(&stats.TotalSubscribers).Error
	if err != nil {
		return ChannelStats{}, err
	}

	var totals struct {
		TotalVideos int64
		TotalViews  int64
		TotalLikes  int64
	}
	err = b.db.Raw(`
		SELECT COUNT(*) AS total_videos,
			COALESCE(SUM(videos.views), 0) AS total_views,
			COALESCE(SUM((SELECT COUNT(*) FROM likes
				WHERE likes.video_id = videos.id)), 0) AS total_likes
		FROM videos
		WHERE videos.owner_id = ?`, userID).
		Scan(&totals).Error
	if err != nil {
		return ChannelStats{}, err
	}

	stats.TotalVideos = totals.TotalVideos
	stats.TotalViews = totals.TotalViews
	stats.TotalLikes = totals.TotalLikes
	return stats, nil
}

// ChannelVideo is the dashboard's own-video projection; drafts included.
type ChannelVideo struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MediaURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	LikesCount   int64     `json:"likesCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (b *Builder) ChannelVideos(userID uint) ([]ChannelVideo, error) {
	videos := []ChannelVideo{}
	err := b.db.Table("videos").
		Select(`videos.id, videos.title, videos.description,
			videos.media_url, videos.thumbnail_url, videos.views,
			videos.is_published, videos.created_at,
			(SELECT COUNT(*) FROM likes
				WHERE likes.video_id = videos.id) AS likes_count`).
		Where("videos.owner_id = ?", userID).
		Order("videos.created_at DESC, videos.id DESC").
		Scan(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
