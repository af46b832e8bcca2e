package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/models"
)

func createVideo(t *testing.T, db *gorm.DB, owner models.User, title string) models.Video {
	t.Helper()
	video := models.Video{
		Title:        title,
		Description:  "about " + title,
		MediaURL:     "https://assets.test/videos/" + title + ".mp4",
		MediaKey:     "videos/" + title + ".mp4",
		ThumbnailURL: "https://assets.test/thumbnails/" + title + ".png",
		ThumbnailKey: "thumbnails/" + title + ".png",
		Duration:     90,
		IsPublished:  true,
		OwnerID:      owner.ID,
	}
	if err := db.Create(&video).Error; err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	return video
}

func createComment(t *testing.T, db *gorm.DB, video models.Video, owner models.User, content string) models.Comment {
	t.Helper()
	comment := models.Comment{Content: content, VideoID: video.ID, OwnerID: owner.ID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

func TestVideoDetail_CountsView(t *testing.T) {
	r, db, _ := setupTest(t)
	owner := createUser(t, db, "creator", "pw")
	video := createVideo(t, db, owner, "clip")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/videos/%d", video.ID), nil)
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("video detail: status=%d message=%q", w.Code, env.Message)
	}

	var got models.Video
	if err := db.First(&got, video.ID).Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("expected 1 view after fetch, got %d", got.Views)
	}
}

func TestVideoDetail_BadID(t *testing.T) {
	r, _, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/abc", nil)
	w, _ := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: expected 400, got %d", w.Code)
	}
}

func TestDeleteVideo_NonOwnerForbidden(t *testing.T) {
	r, db, _ := setupTest(t)
	owner := createUser(t, db, "creator", "pw")
	intruder := createUser(t, db, "intruder", "pw")
	video := createVideo(t, db, owner, "clip")

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/videos/%d", video.ID), nil)
	req.Header.Set("Authorization", bearerToken(t, intruder))
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusForbidden || env.Success {
		t.Errorf("non-owner delete: status=%d success=%v", w.Code, env.Success)
	}

	if db.First(&models.Video{}, video.ID).RecordNotFound() {
		t.Error("video must survive a forbidden delete")
	}
}

func TestDeleteVideo_CascadesAndFeedStaysServable(t *testing.T) {
	r, db, assets := setupTest(t)
	owner := createUser(t, db, "creator", "pw")
	fan := createUser(t, db, "fan", "pw")
	video := createVideo(t, db, owner, "clip")
	comment := createComment(t, db, video, fan, "great")

	like := models.Like{VideoID: &video.ID, LikedByID: fan.ID}
	if err := db.Create(&like).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}
	commentLike := models.Like{CommentID: &comment.ID, LikedByID: owner.ID}
	if err := db.Create(&commentLike).Error; err != nil {
		t.Fatalf("create comment like: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/videos/%d", video.ID), nil)
	req.Header.Set("Authorization", bearerToken(t, owner))
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status=%d message=%q", w.Code, env.Message)
	}

	var leftovers int64
	db.Model(&models.Comment{}).Where("video_id = ?", video.ID).Count(&leftovers)
	if leftovers != 0 {
		t.Errorf("expected comments removed, %d left", leftovers)
	}
	db.Model(&models.Like{}).Count(&leftovers)
	if leftovers != 0 {
		t.Errorf("expected all related likes removed, %d left", leftovers)
	}

	if len(assets.deleted) != 2 {
		t.Errorf("expected media and thumbnail deletion, got %v", assets.deleted)
	}

	// The comment feed for the dead video serves an empty page, never a
	// raw query failure.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/comments/%d", video.ID), nil)
	w, env = doRequest(t, r, req)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("comments of deleted video: status=%d success=%v", w.Code, env.Success)
	}
	var page struct {
		TotalDocs int64 `json:"totalDocs"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalDocs != 0 {
		t.Errorf("expected empty comment page, got %d docs", page.TotalDocs)
	}
}

func TestAddComment_ThenFeed(t *testing.T) {
	r, db, _ := setupTest(t)
	owner := createUser(t, db, "creator", "pw")
	fan := createUser(t, db, "fan", "pw")
	video := createVideo(t, db, owner, "clip")

	req := jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/v1/comments/%d", video.ID), map[string]string{
		"content": "  first!  ",
	})
	req.Header.Set("Authorization", bearerToken(t, fan))
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("add comment: status=%d message=%q", w.Code, env.Message)
	}
	var created models.Comment
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode comment: %v", err)
	}
	if created.Content != "first!" {
		t.Errorf("content must be trimmed, got %q", created.Content)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/comments/%d", video.ID), nil)
	w, env = doRequest(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("comment feed: status=%d", w.Code)
	}
	var page struct {
		TotalDocs int64 `json:"totalDocs"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalDocs != 1 {
		t.Errorf("expected 1 comment, got %d", page.TotalDocs)
	}
}

func TestToggleVideoLikeRoute(t *testing.T) {
	r, db, _ := setupTest(t)
	owner := createUser(t, db, "creator", "pw")
	fan := createUser(t, db, "fan", "pw")
	video := createVideo(t, db, owner, "clip")
	token := bearerToken(t, fan)

	target := fmt.Sprintf("/api/v1/likes/toggle/v/%d", video.ID)
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", token)
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first toggle: status=%d message=%q", w.Code, env.Message)
	}

	var likes int64
	db.Model(&models.Like{}).Where("video_id = ?", video.ID).Count(&likes)
	if likes != 1 {
		t.Fatalf("expected 1 like, got %d", likes)
	}

	req = httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", token)
	doRequest(t, r, req)
	db.Model(&models.Like{}).Where("video_id = ?", video.ID).Count(&likes)
	if likes != 0 {
		t.Errorf("expected like removed after second toggle, got %d", likes)
	}
}
