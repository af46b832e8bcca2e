package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"vidtube/cmd/config"
	"vidtube/pkg/database"
	"vidtube/pkg/handlers"
	"vidtube/pkg/s3"
)

func main() {
	config.Load()

	db, err := database.Open(config.DBPath)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer db.Close()

	store := s3.NewStore(config.AWSRegion, config.S3Bucket)
	h := handlers.New(db, store)

	gin.SetMode(config.GinMode)
	r := gin.Default()
	registerRoutes(r, h)

	if err := r.Run(config.ServerAddr); err != nil {
		log.Fatal("server stopped: ", err)
	}
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api/v1")

	api.GET("/healthcheck", h.Healthcheck)

	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.POST("/refresh-token", h.RefreshToken)
	users.POST("/logout", h.RequireAuth(), h.Logout)
	users.POST("/change-password", h.RequireAuth(), h.ChangePassword)
	users.GET("/current-user", h.RequireAuth(), h.CurrentUser)
	users.PATCH("/update-account", h.RequireAuth(), h.UpdateAccount)
	users.PATCH("/avatar", h.RequireAuth(), h.UpdateAvatar)
	users.PATCH("/cover-image", h.RequireAuth(), h.UpdateCoverImage)
	users.GET("/c/:username", h.OptionalAuth(), h.ChannelProfile)
	users.GET("/history", h.RequireAuth(), h.WatchHistory)

	videos := api.Group("/videos")
	videos.GET("", h.VideoFeed)
	videos.POST("", h.RequireAuth(), h.PublishVideo)
	videos.GET("/:videoId", h.OptionalAuth(), h.VideoDetail)
	videos.PATCH("/:videoId", h.RequireAuth(), h.UpdateVideo)
	videos.DELETE("/:videoId", h.RequireAuth(), h.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", h.RequireAuth(), h.TogglePublishStatus)

	comments := api.Group("/comments")
	comments.GET("/:videoId", h.OptionalAuth(), h.VideoComments)
	comments.POST("/:videoId", h.RequireAuth(), h.AddComment)
	comments.PATCH("/c/:commentId", h.RequireAuth(), h.UpdateComment)
	comments.DELETE("/c/:commentId", h.RequireAuth(), h.DeleteComment)

	likes := api.Group("/likes", h.RequireAuth())
	likes.POST("/toggle/v/:videoId", h.ToggleVideoLike)
	likes.POST("/toggle/c/:commentId", h.ToggleCommentLike)
	likes.POST("/toggle/t/:tweetId", h.ToggleTweetLike)
	likes.GET("/videos", h.LikedVideos)

	tweets := api.Group("/tweets")
	tweets.POST("", h.RequireAuth(), h.CreateTweet)
	tweets.GET("/user/:userId", h.OptionalAuth(), h.UserTweets)
	tweets.PATCH("/:tweetId", h.RequireAuth(), h.UpdateTweet)
	tweets.DELETE("/:tweetId", h.RequireAuth(), h.DeleteTweet)

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("/c/:channelId", h.RequireAuth(), h.ToggleSubscription)
	subscriptions.GET("/c/:channelId", h.ChannelSubscribers)
	subscriptions.GET("/u/:subscriberId", h.SubscribedChannels)

	playlists := api.Group("/playlists")
	playlists.POST("", h.RequireAuth(), h.CreatePlaylist)
	playlists.GET("/:playlistId", h.PlaylistDetail)
	playlists.PATCH("/:playlistId", h.RequireAuth(), h.UpdatePlaylist)
	playlists.DELETE("/:playlistId", h.RequireAuth(), h.DeletePlaylist)
	playlists.PATCH("/add/:videoId/:playlistId", h.RequireAuth(), h.AddVideoToPlaylist)
	playlists.PATCH("/remove/:videoId/:playlistId", h.RequireAuth(), h.RemoveVideoFromPlaylist)
	playlists.GET("/user/:userId", h.UserPlaylists)

	dashboard := api.Group("/dashboard", h.RequireAuth())
	dashboard.GET("/stats", h.ChannelStats)
	dashboard.GET("/videos", h.ChannelVideos)
}
