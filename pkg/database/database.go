package database

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"vidtube/pkg/models"
)

// Open connects to the sqlite database at path and migrates the schema.
// The returned handle is passed down to handlers and query builders; the
// caller owns its lifecycle and closes it on shutdown.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Like{},
		&models.Subscription{},
		&models.Tweet{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.WatchHistory{},
	)
	if err := db.Error; err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
