package handlers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidtube/cmd/config"
	"vidtube/pkg/auth"
	"vidtube/pkg/models"
	"vidtube/pkg/query"
	"vidtube/pkg/response"
	"vidtube/pkg/s3"
)

// AssetStore is the slice of the asset host the handlers need.
type AssetStore interface {
	Upload(file io.Reader, filename, kind string) (s3.Asset, error)
	Delete(key string) error
}

type Handler struct {
	db      *gorm.DB
	queries *query.Builder
	assets  AssetStore
}

func New(db *gorm.DB, assets AssetStore) *Handler {
	return &Handler{
		db:      db,
		queries: query.New(db),
		assets:  assets,
	}
}

const currentUserKey = "currentUser"

// RequireAuth rejects requests without a valid access token.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.userFromRequest(c)
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a token is present and lets
// anonymous requests through; viewer-relative fields then evaluate false.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := h.userFromRequest(c); err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

func (h *Handler) userFromRequest(c *gin.Context) (*models.User, error) {
	token := ""
	if cookie, err := c.Cookie("accessToken"); err == nil {
		token = cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return nil, response.Unauthorized("unauthorized request")
	}

	claims, err := auth.ParseToken(token, config.AccessTokenSecret)
	if err != nil {
		return nil, response.Unauthorized("invalid access token")
	}

	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return nil, response.Unauthorized("invalid access token")
	}
	return &user, nil
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func viewerID(c *gin.Context) uint {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return 0
}

func (h *Handler) ok(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, response.New(status, data, message))
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := response.StatusOf(err)
	message := err.Error()
	if _, ok := err.(*response.APIError); !ok {
		log.Printf("request failed: %v", err)
		message = "something went wrong"
	}
	c.JSON(status, response.New(status, nil, message))
}

func pathID(c *gin.Context, param string) (uint, error) {
	return query.ParseID(c.Param(param), param)
}

// storeFormFile copies a multipart form file to a temp path, optionally
// probes its duration, ships it to the asset host and cleans up the local
// copy.
func (h *Handler) storeFormFile(c *gin.Context, field, kind string, probe bool) (s3.Asset, float64, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return s3.Asset{}, 0, response.InvalidArgument(field + " file is required")
	}

	tempDir, err := os.MkdirTemp("", "vidtube-upload-")
	if err != nil {
		return s3.Asset{}, 0, err
	}
	defer os.RemoveAll(tempDir)

	tempPath := filepath.Join(tempDir, filepath.Base(fileHeader.Filename))
	outFile, err := os.Create(tempPath)
	if err != nil {
		return s3.Asset{}, 0, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		outFile.Close()
		return s3.Asset{}, 0, err
	}
	_, err = io.Copy(outFile, src)
	src.Close()
	outFile.Close()
	if err != nil {
		return s3.Asset{}, 0, err
	}

	duration := 0.0
	if probe {
		duration = s3.ProbeDuration(tempPath)
	}

	local, err := os.Open(tempPath)
	if err != nil {
		return s3.Asset{}, 0, err
	}
	defer local.Close()

	asset, err := h.assets.Upload(local, fileHeader.Filename, kind)
	if err != nil {
		return s3.Asset{}, 0, response.Internal("failed to upload " + field)
	}
	return asset, duration, nil
}

// Healthcheck reports liveness plus store reachability.
func (h *Handler) Healthcheck(c *gin.Context) {
	if err := h.db.DB().Ping(); err != nil {
		h.fail(c, response.Internal("database unreachable"))
		return
	}
	h.ok(c, http.StatusOK, gin.H{"message": "All O.K"}, "OK")
}
