package query

import (
	"time"

	"vidtube/pkg/models"
)

// CommentView is the fixed comment-feed projection.
type CommentView struct {
	ID         uint         `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

type commentRow struct {
	ID         uint
	Content    string
	CreatedAt  time.Time
	LikesCount int64
	IsLiked    bool
	OwnerRow
}

// VideoComments returns a video's comments newest first, each with its
// owner summary, like count and the viewer's like state. An unknown or
// deleted video id yields an empty page, not an error, so feeds stay
// servable after a video and its comments are removed.
func (b *Builder) VideoComments(videoID, viewerID uint, page PageRequest) (Page, error) {
	var total int64
	err := b.db.Model(&models.Comment{}).
		Where("video_id = ?", videoID).
		Count(&total).Error
	if err != nil {
		return Page{}, err
	}

	var rows []commentRow
	err = b.db.Table("comments").
		Select(`comments.id, comments.content, comments.created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.comment_id = comments.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes
				WHERE likes.comment_id = comments.id
				AND likes.liked_by_id = ?) AS is_liked, `+ownerColumns, viewerID).
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC, comments.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return Page{}, err
	}

	docs := make([]CommentView, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, CommentView{
			ID:         r.ID,
			Content:    r.Content,
			CreatedAt:  r.CreatedAt,
			LikesCount: r.LikesCount,
			IsLiked:    r.IsLiked,
			Owner:      r.OwnerRow.summary(),
		})
	}
	return NewPage(docs, total, page), nil
}
