package query

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

// FeedOptions narrows and orders the public video feed.
type FeedOptions struct {
	Search   string // free-text match over title and description
	SortBy   string // createdAt | views | duration
	SortType string // asc | desc
	UserID   string // optional channel filter, textual id from the query
}

// VideoSummary is the fixed feed projection.
type VideoSummary struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	MediaURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"owner"`
}

// VideoRow is the flat scan target shared by the feed-shaped queries;
// exported so gorm scans the embedded fields.
type VideoRow struct {
	ID           uint
	Title        string
	Description  string
	MediaURL     string
	ThumbnailURL string
	Duration     float64
	Views        int64
	CreatedAt    time.Time
	OwnerRow
}

func (r VideoRow) summary() VideoSummary {
	return VideoSummary{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		MediaURL:     r.MediaURL,
		ThumbnailURL: r.ThumbnailURL,
		Duration:     r.Duration,
		Views:        r.Views,
		CreatedAt:    r.CreatedAt,
		Owner:        r.OwnerRow.summary(),
	}
}

const videoColumns = `videos.id, videos.title, videos.description,
	videos.media_url, videos.thumbnail_url, videos.duration, videos.views,
	videos.created_at`

var feedSortColumns = map[string]string{
	"createdAt": "videos.created_at",
	"views":     "videos.views",
	"duration":  "videos.duration",
}

func feedOrder(sortBy, sortType string) (string, error) {
	if sortBy == "" {
		return "videos.created_at DESC, videos.id DESC", nil
	}
	column, ok := feedSortColumns[sortBy]
	if !ok {
		return "", response.InvalidArgument("invalid sortBy")
	}
	direction := "DESC"
	switch sortType {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return "", response.InvalidArgument("invalid sortType")
	}
	return fmt.Sprintf("%s %s, videos.id %s", column, direction, direction), nil
}

// VideoFeed lists published videos with their owner summaries. Drafts never
// appear, even when the caller filters by their own channel.
func (b *Builder) VideoFeed(opts FeedOptions, page PageRequest) (Page, error) {
	base := b.db.Table("videos").Where("videos.is_published = ?", true)

	if opts.UserID != "" {
		ownerID, err := ParseID(opts.UserID, "userId")
		if err != nil {
			return Page{}, err
		}
		base = base.Where("videos.owner_id = ?", ownerID)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		base = base.Where("(videos.title LIKE ? OR videos.description LIKE ?)", pattern, pattern)
	}

	order, err := feedOrder(opts.SortBy, opts.SortType)
	if err != nil {
		return Page{}, err
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page{}, err
	}

	var rows []VideoRow
	err = base.
		Select(videoColumns+", "+ownerColumns).
		Joins("JOIN users ON users.id = videos.owner_id").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return Page{}, err
	}

	docs := make([]VideoSummary, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.summary())
	}
	return NewPage(docs, total, page), nil
}

// ChannelSummary extends the owner projection with the channel's subscriber
// count and whether the viewer follows it.
type ChannelSummary struct {
	OwnerSummary
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

// VideoDetail is the single-video projection.
type VideoDetail struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	MediaURL     string         `json:"videoFile"`
	ThumbnailURL string         `json:"thumbnail"`
	Duration     float64        `json:"duration"`
	Views        int64          `json:"views"`
	CreatedAt    time.Time      `json:"createdAt"`
	LikesCount   int64          `json:"likesCount"`
	IsLiked      bool           `json:"isLiked"`
	Owner        ChannelSummary `json:"owner"`
}

type videoDetailRow struct {
	VideoRow
	LikesCount       int64
	IsLiked          bool
	SubscribersCount int64
	IsSubscribed     bool
}

// VideoDetail fetches one video with its like count, the viewer's like
// state, and the owner's subscriber aggregate, in a single round trip.
func (b *Builder) VideoDetail(videoID, viewerID uint) (*VideoDetail, error) {
	var row videoDetailRow
	err := b.db.Raw(`
		SELECT `+videoColumns+`, `+ownerColumns+`,
			(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes
				WHERE likes.video_id = videos.id AND likes.liked_by_id = ?) AS is_liked,
			(SELECT COUNT(*) FROM subscriptions
				WHERE subscriptions.channel_id = users.id) AS subscribers_count,
			EXISTS(SELECT 1 FROM subscriptions
				WHERE subscriptions.channel_id = users.id
				AND subscriptions.subscriber_id = ?) AS is_subscribed
		FROM videos
		JOIN users ON users.id = videos.owner_id
		WHERE videos.id = ?`, viewerID, viewerID, videoID).
		Scan(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, response.NotFound("video not found")
	}
	if err != nil {
		return nil, err
	}

	detail := &VideoDetail{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		MediaURL:     row.MediaURL,
		ThumbnailURL: row.ThumbnailURL,
		Duration:     row.Duration,
		Views:        row.Views,
		CreatedAt:    row.CreatedAt,
		LikesCount:   row.LikesCount,
		IsLiked:      row.IsLiked,
		Owner: ChannelSummary{
			OwnerSummary:     row.OwnerRow.summary(),
			SubscribersCount: row.SubscribersCount,
			IsSubscribed:     row.IsSubscribed,
		},
	}
	return detail, nil
}

// MarkViewed records the side effects of a successful detail fetch: the view
// counter moves up by one atomically, and the video lands in the viewer's
// watch history exactly once (rewatching only bumps the timestamp).
func (b *Builder) MarkViewed(videoID, viewerID uint) error {
	err := b.db.Model(&models.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return err
	}
	if viewerID == 0 {
		return nil
	}
	entry := models.WatchHistory{UserID: viewerID, VideoID: videoID}
	return b.db.
		Where(models.WatchHistory{UserID: viewerID, VideoID: videoID}).
		Assign(map[string]interface{}{"watched_at": timeNow()}).
		FirstOrCreate(&entry).Error
}
