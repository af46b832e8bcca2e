package query

import (
	"time"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

// PlaylistSummary is the per-playlist rollup in a user's playlist list.
type PlaylistSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserPlaylists lists a user's playlists with video and view rollups.
func (b *Builder) UserPlaylists(userID uint) ([]PlaylistSummary, error) {
	var user models.User
	if err := b.db.Select("id").First(&user, userID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("user not found")
		}
		return nil, err
	}

	playlists := []PlaylistSummary{}
	err := b.db.Table("playlists").
		Select(`playlists.id, playlists.name, playlists.description,
			playlists.updated_at,
			(SELECT COUNT(*) FROM playlist_videos pv
				WHERE pv.playlist_id = playlists.id) AS total_videos,
			COALESCE((SELECT SUM(v.views) FROM playlist_videos pv
				JOIN videos v ON v.id = pv.video_id
				WHERE pv.playlist_id = playlists.id), 0) AS total_views`).
		Where("playlists.owner_id = ?", userID).
		Order("playlists.updated_at DESC, playlists.id DESC").
		Scan(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// PlaylistDetail is the full playlist projection. Only published videos
// survive the join; the rollups cover the survivors, not the raw set.
type PlaylistDetail struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	TotalVideos int            `json:"totalVideos"`
	TotalViews  int64          `json:"totalViews"`
	Videos      []VideoSnippet `json:"videos"`
	Owner       OwnerSummary   `json:"owner"`
}

func (b *Builder) PlaylistDetail(playlistID uint) (*PlaylistDetail, error) {
	var playlist models.Playlist
	if err := b.db.First(&playlist, playlistID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, response.NotFound("playlist not found")
		}
		return nil, err
	}

	videos := []VideoSnippet{}
	err := b.db.Table("playlist_videos").
		Select(`videos.id, videos.title, videos.description,
			videos.media_url, videos.thumbnail_url, videos.owner_id,
			videos.duration, videos.views, videos.created_at`).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Where("playlist_videos.playlist_id = ? AND videos.is_published = ?", playlistID, true).
		Order("playlist_videos.position ASC, playlist_videos.id ASC").
		Scan(&videos).Error
	if err != nil {
		return nil, err
	}

	var owner OwnerRow
	err = b.db.Table("users").
		Select(ownerColumns).
		Where("users.id = ?", playlist.OwnerID).
		Scan(&owner).Error
	if err != nil {
		return nil, err
	}

	detail := &PlaylistDetail{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
		TotalVideos: len(videos),
		Videos:      videos,
		Owner:       owner.summary(),
	}
	for _, v := range videos {
		detail.TotalViews += v.Views
	}
	return detail, nil
}
