package query

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/database"
	"vidtube/pkg/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Password: "irrelevant",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, owner models.User, title string, published bool, views int64) models.Video {
	t.Helper()
	video := models.Video{
		Title:       title,
		Description: "about " + title,
		MediaURL:    "https://assets.example.com/" + title + ".mp4",
		Duration:    120,
		Views:       views,
		IsPublished: published,
		OwnerID:     owner.ID,
	}
	if err := db.Create(&video).Error; err != nil {
		t.Fatalf("seed video %s: %v", title, err)
	}
	return video
}

func seedComment(t *testing.T, db *gorm.DB, video models.Video, owner models.User, content string) models.Comment {
	t.Helper()
	comment := models.Comment{Content: content, VideoID: video.ID, OwnerID: owner.ID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}

func seedTweet(t *testing.T, db *gorm.DB, owner models.User, content string) models.Tweet {
	t.Helper()
	tweet := models.Tweet{Content: content, OwnerID: owner.ID}
	if err := db.Create(&tweet).Error; err != nil {
		t.Fatalf("seed tweet: %v", err)
	}
	return tweet
}

func seedSubscription(t *testing.T, db *gorm.DB, subscriber, channel models.User) {
	t.Helper()
	sub := models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
}

func seedVideoLike(t *testing.T, db *gorm.DB, video models.Video, user models.User) {
	t.Helper()
	like := models.Like{VideoID: &video.ID, LikedByID: user.ID}
	if err := db.Create(&like).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
