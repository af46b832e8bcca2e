package query

import (
	"fmt"
	"net/http"
	"testing"

	"vidtube/pkg/models"
	"vidtube/pkg/response"
)

func TestVideoFeed_PublishedOnly(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	seedVideo(t, db, owner, "published", true, 0)
	seedVideo(t, db, owner, "draft", false, 0)

	page, err := b.VideoFeed(FeedOptions{UserID: fmt.Sprint(owner.ID)}, PageRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("VideoFeed error: %v", err)
	}
	docs := page.Docs.([]VideoSummary)
	if len(docs) != 1 {
		t.Fatalf("expected 1 video, got %d", len(docs))
	}
	if docs[0].Title != "published" {
		t.Errorf("expected published video, got %q", docs[0].Title)
	}
	if docs[0].Owner.Username != "creator" {
		t.Errorf("expected owner summary, got %+v", docs[0].Owner)
	}
}

func TestVideoFeed_Pagination(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	for i := 0; i < 25; i++ {
		seedVideo(t, db, owner, fmt.Sprintf("video-%02d", i), true, 0)
	}

	first, err := b.VideoFeed(FeedOptions{}, PageRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("VideoFeed page 1: %v", err)
	}
	if n := len(first.Docs.([]VideoSummary)); n != 10 {
		t.Errorf("page 1: expected 10 docs, got %d", n)
	}
	if first.TotalDocs != 25 || first.TotalPages != 3 {
		t.Errorf("expected 25 docs over 3 pages, got %d over %d", first.TotalDocs, first.TotalPages)
	}
	if first.HasPrevPage || !first.HasNextPage {
		t.Errorf("page 1: hasPrev=%v hasNext=%v", first.HasPrevPage, first.HasNextPage)
	}

	last, err := b.VideoFeed(FeedOptions{}, PageRequest{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("VideoFeed page 3: %v", err)
	}
	if n := len(last.Docs.([]VideoSummary)); n != 5 {
		t.Errorf("page 3: expected 5 docs, got %d", n)
	}
	if !last.HasPrevPage || last.HasNextPage {
		t.Errorf("page 3: hasPrev=%v hasNext=%v", last.HasPrevPage, last.HasNextPage)
	}
}

func TestVideoFeed_Search(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	seedVideo(t, db, owner, "gopher conference talk", true, 0)
	seedVideo(t, db, owner, "cooking stream", true, 0)

	page, err := b.VideoFeed(FeedOptions{Search: "gopher"}, PageRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("VideoFeed error: %v", err)
	}
	docs := page.Docs.([]VideoSummary)
	if len(docs) != 1 || docs[0].Title != "gopher conference talk" {
		t.Fatalf("search miss: %+v", docs)
	}
}

func TestVideoFeed_SortByViews(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	seedVideo(t, db, owner, "low", true, 5)
	seedVideo(t, db, owner, "high", true, 500)

	page, err := b.VideoFeed(FeedOptions{SortBy: "views", SortType: "desc"}, PageRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("VideoFeed error: %v", err)
	}
	docs := page.Docs.([]VideoSummary)
	if len(docs) != 2 || docs[0].Title != "high" {
		t.Fatalf("expected high-view video first, got %+v", docs)
	}
}

func TestVideoFeed_RejectsBadInput(t *testing.T) {
	db := testDB(t)
	b := New(db)

	_, err := b.VideoFeed(FeedOptions{UserID: "garbage"}, PageRequest{Page: 1, Limit: 10})
	if response.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("bad userId: expected 400, got %v", err)
	}
	_, err = b.VideoFeed(FeedOptions{SortBy: "password"}, PageRequest{Page: 1, Limit: 10})
	if response.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("bad sortBy: expected 400, got %v", err)
	}
	_, err = b.VideoFeed(FeedOptions{SortBy: "views", SortType: "sideways"}, PageRequest{Page: 1, Limit: 10})
	if response.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("bad sortType: expected 400, got %v", err)
	}
}

func TestVideoDetail_AnonymousViewer(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	fan := seedUser(t, db, "fan")
	video := seedVideo(t, db, owner, "clip", true, 0)
	seedVideoLike(t, db, video, fan)
	seedSubscription(t, db, fan, owner)

	detail, err := b.VideoDetail(video.ID, 0)
	if err != nil {
		t.Fatalf("VideoDetail error: %v", err)
	}
	if detail.Title != "clip" || detail.MediaURL == "" {
		t.Errorf("expected full video projection, got %+v", detail)
	}
	if detail.Owner.Username != "creator" {
		t.Errorf("expected owner creator, got %+v", detail.Owner)
	}
	if detail.IsLiked {
		t.Error("anonymous viewer: isLiked must be false")
	}
	if detail.Owner.IsSubscribed {
		t.Error("anonymous viewer: isSubscribed must be false")
	}
	if detail.LikesCount != 1 {
		t.Errorf("expected likesCount 1, got %d", detail.LikesCount)
	}
	if detail.Owner.SubscribersCount != 1 {
		t.Errorf("expected subscribersCount 1, got %d", detail.Owner.SubscribersCount)
	}
}

func TestVideoDetail_ViewerRelativeFields(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	fan := seedUser(t, db, "fan")
	video := seedVideo(t, db, owner, "clip", true, 0)
	seedVideoLike(t, db, video, fan)
	seedSubscription(t, db, fan, owner)

	detail, err := b.VideoDetail(video.ID, fan.ID)
	if err != nil {
		t.Fatalf("VideoDetail error: %v", err)
	}
	if !detail.IsLiked {
		t.Error("fan liked the video: isLiked must be true")
	}
	if !detail.Owner.IsSubscribed {
		t.Error("fan subscribes to the owner: isSubscribed must be true")
	}
}

func TestVideoDetail_NotFound(t *testing.T) {
	db := testDB(t)
	b := New(db)

	_, err := b.VideoDetail(9999, 0)
	if response.StatusOf(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestMarkViewed_IncrementsOnce(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	viewer := seedUser(t, db, "viewer")
	video := seedVideo(t, db, owner, "clip", true, 7)

	if err := b.MarkViewed(video.ID, viewer.ID); err != nil {
		t.Fatalf("MarkViewed error: %v", err)
	}

	var got models.Video
	if err := db.First(&got, video.ID).Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	if got.Views != 8 {
		t.Errorf("expected views 8, got %d", got.Views)
	}
}

func TestMarkViewed_WatchHistoryIdempotent(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	viewer := seedUser(t, db, "viewer")
	video := seedVideo(t, db, owner, "clip", true, 0)

	for i := 0; i < 3; i++ {
		if err := b.MarkViewed(video.ID, viewer.ID); err != nil {
			t.Fatalf("MarkViewed #%d: %v", i, err)
		}
	}

	entries := countRows(t, db, &models.WatchHistory{}, "user_id = ? AND video_id = ?", viewer.ID, video.ID)
	if entries != 1 {
		t.Errorf("expected 1 watch-history row, got %d", entries)
	}

	history, err := b.WatchHistoryFeed(viewer.ID)
	if err != nil {
		t.Fatalf("WatchHistoryFeed error: %v", err)
	}
	if len(history) != 1 || history[0].ID != video.ID {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestMarkViewed_AnonymousSkipsHistory(t *testing.T) {
	db := testDB(t)
	b := New(db)
	owner := seedUser(t, db, "creator")
	video := seedVideo(t, db, owner, "clip", true, 0)

	if err := b.MarkViewed(video.ID, 0); err != nil {
		t.Fatalf("MarkViewed error: %v", err)
	}
	if n := countRows(t, db, &models.WatchHistory{}, "video_id = ?", video.ID); n != 0 {
		t.Errorf("anonymous view must not write history, got %d rows", n)
	}
}
