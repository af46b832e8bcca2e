package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Username     string    `gorm:"unique_index;not null" json:"username"`
	Email        string    `gorm:"unique_index;not null" json:"email"`
	FullName     string    `json:"fullName"`
	Password     string    `gorm:"not null" json:"-"`
	RefreshToken string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	AvatarKey    string    `json:"-"`
	CoverURL     string    `json:"coverImage"`
	CoverKey     string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Video struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	MediaURL     string    `json:"videoFile"`
	MediaKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `gorm:"default:0" json:"views"`
	IsPublished  bool      `gorm:"default:false" json:"isPublished"`
	OwnerID      uint      `gorm:"index;not null" json:"ownerId"`
	Owner        *User     `gorm:"foreignkey:OwnerID" json:"owner,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

type Comment struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	VideoID   uint      `gorm:"index;not null" json:"videoId"`
	OwnerID   uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// Like references exactly one of a video, a comment or a tweet. The
// composite unique indexes make a repeated (subject, user) insert fail at
// the store, which is what keeps concurrent toggles from double-inserting.
type Like struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	VideoID   *uint     `gorm:"unique_index:uq_like_video_user" json:"videoId,omitempty"`
	CommentID *uint     `gorm:"unique_index:uq_like_comment_user" json:"commentId,omitempty"`
	TweetID   *uint     `gorm:"unique_index:uq_like_tweet_user" json:"tweetId,omitempty"`
	LikedByID uint      `gorm:"not null;unique_index:uq_like_video_user,uq_like_comment_user,uq_like_tweet_user" json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

type Subscription struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	SubscriberID uint      `gorm:"not null;unique_index:uq_sub_pair" json:"subscriberId"`
	ChannelID    uint      `gorm:"not null;unique_index:uq_sub_pair;index" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type Tweet struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	OwnerID   uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string {
	return "tweets"
}

type Playlist struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo keeps playlist membership as an ordered, de-duplicated set.
type PlaylistVideo struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	PlaylistID uint      `gorm:"not null;unique_index:uq_playlist_video" json:"playlistId"`
	VideoID    uint      `gorm:"not null;unique_index:uq_playlist_video" json:"videoId"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

// WatchHistory records that a user has watched a video. Membership is
// idempotent: rewatching bumps WatchedAt instead of adding a second row.
type WatchHistory struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserID    uint      `gorm:"not null;unique_index:uq_watch_pair" json:"userId"`
	VideoID   uint      `gorm:"not null;unique_index:uq_watch_pair" json:"videoId"`
	WatchedAt time.Time `json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
