package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

var (
	ServerAddr string
	GinMode    string

	DBPath string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	AWSRegion string
	S3Bucket  string
)

func Load() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("cmd/config/")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("vidtube")
	viper.AutomaticEnv()

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.gin_mode", "debug")
	viper.SetDefault("db.path", "vidtube.db")
	viper.SetDefault("jwt.access_secret", "dev-access-secret")
	viper.SetDefault("jwt.refresh_secret", "dev-refresh-secret")
	viper.SetDefault("jwt.access_ttl", "1h")
	viper.SetDefault("jwt.refresh_ttl", "240h")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file, %s", err)
		}
	}

	ServerAddr = viper.GetString("server.addr")
	GinMode = viper.GetString("server.gin_mode")
	DBPath = viper.GetString("db.path")
	AccessTokenSecret = viper.GetString("jwt.access_secret")
	RefreshTokenSecret = viper.GetString("jwt.refresh_secret")
	AccessTokenTTL = viper.GetDuration("jwt.access_ttl")
	RefreshTokenTTL = viper.GetDuration("jwt.refresh_ttl")
	AWSRegion = viper.GetString("aws.region")
	S3Bucket = viper.GetString("aws.s3_bucket")
}
