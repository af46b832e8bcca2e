package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidtube/cmd/config"
	"vidtube/pkg/auth"
	"vidtube/pkg/models"
	"vidtube/pkg/query"
	"vidtube/pkg/response"
)

// Register creates an account from a multipart form: fullName, email,
// username, password plus a required avatar image and an optional cover.
func (h *Handler) Register(c *gin.Context) {
	fullName := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	username := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
	password := c.PostForm("password")

	if fullName == "" || email == "" || username == "" || password == "" {
		h.fail(c, response.InvalidArgument("all fields are required"))
		return
	}

	var existing models.User
	err := h.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		h.fail(c, response.Conflict("user with email or username already exists"))
		return
	}
	if !gorm.IsRecordNotFoundError(err) {
		h.fail(c, err)
		return
	}

	avatar, _, err := h.storeFormFile(c, "avatar", "avatars", false)
	if err != nil {
		h.fail(c, err)
		return
	}

	user := models.User{
		Username:  username,
		Email:     email,
		FullName:  fullName,
		AvatarURL: avatar.URL,
		AvatarKey: avatar.Key,
	}
	if _, err := c.FormFile("coverImage"); err == nil {
		cover, _, err := h.storeFormFile(c, "coverImage", "covers", false)
		if err != nil {
			h.fail(c, err)
			return
		}
		user.CoverURL = cover.URL
		user.CoverKey = cover.Key
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		h.fail(c, err)
		return
	}
	user.Password = hashed

	if err := h.db.Create(&user).Error; err != nil {
		if query.IsUniqueViolation(err) {
			h.fail(c, response.Conflict("user with email or username already exists"))
			return
		}
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, user, "User registered successfully")
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, response.InvalidArgument("password is required"))
		return
	}
	if req.Username == "" && req.Email == "" {
		h.fail(c, response.InvalidArgument("username or email is required"))
		return
	}

	var user models.User
	err := h.db.Where("username = ? OR email = ?",
		strings.ToLower(req.Username), req.Email).First(&user).Error
	if err != nil {
		h.fail(c, response.NotFound("user does not exist"))
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		h.fail(c, response.Unauthorized("invalid user credentials"))
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(&user)
	if err != nil {
		h.fail(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	h.ok(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

func (h *Handler) issueTokenPair(user *models.User) (string, string, error) {
	accessToken, err := auth.GenerateToken(user.ID, config.AccessTokenSecret, config.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := auth.GenerateToken(user.ID, config.RefreshTokenSecret, config.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	err = h.db.Model(user).UpdateColumn("refresh_token", refreshToken).Error
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, int(config.AccessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("refreshToken", refreshToken, int(config.RefreshTokenTTL.Seconds()), "/", "", false, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}

func (h *Handler) Logout(c *gin.Context) {
	user := currentUser(c)
	if err := h.db.Model(user).UpdateColumn("refresh_token", "").Error; err != nil {
		h.fail(c, err)
		return
	}
	clearAuthCookies(c)
	h.ok(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken rotates the token pair. The incoming refresh token must both
// verify and match the one stored for the user.
func (h *Handler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie("refreshToken")
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		h.fail(c, response.Unauthorized("unauthorized request"))
		return
	}

	claims, err := auth.ParseToken(token, config.RefreshTokenSecret)
	if err != nil {
		h.fail(c, response.Unauthorized("invalid refresh token"))
		return
	}

	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		h.fail(c, response.Unauthorized("invalid refresh token"))
		return
	}
	if user.RefreshToken == "" || user.RefreshToken != token {
		h.fail(c, response.Unauthorized("refresh token is expired or used"))
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(&user)
	if err != nil {
		h.fail(c, err)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	h.ok(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, response.InvalidArgument("old and new passwords are required"))
		return
	}

	user := currentUser(c)
	if !auth.CheckPassword(user.Password, req.OldPassword) {
		h.fail(c, response.InvalidArgument("invalid old password"))
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.Model(user).UpdateColumn("password", hashed).Error; err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *Handler) CurrentUser(c *gin.Context) {
	h.ok(c, http.StatusOK, currentUser(c), "User fetched successfully")
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FullName == "" || req.Email == "" {
		h.fail(c, response.InvalidArgument("fullName and email are required"))
		return
	}

	user := currentUser(c)
	err := h.db.Model(user).Updates(map[string]interface{}{
		"full_name": req.FullName,
		"email":     req.Email,
	}).Error
	if err != nil {
		if query.IsUniqueViolation(err) {
			h.fail(c, response.Conflict("email already in use"))
			return
		}
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar uploads the replacement first and deletes the previous asset
// only after the row points at the new one.
func (h *Handler) UpdateAvatar(c *gin.Context) {
	user := currentUser(c)
	asset, _, err := h.storeFormFile(c, "avatar", "avatars", false)
	if err != nil {
		h.fail(c, err)
		return
	}

	oldKey := user.AvatarKey
	err = h.db.Model(user).Updates(map[string]interface{}{
		"avatar_url": asset.URL,
		"avatar_key": asset.Key,
	}).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	if oldKey != "" {
		h.assets.Delete(oldKey)
	}
	h.ok(c, http.StatusOK, user, "Avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(c *gin.Context) {
	user := currentUser(c)
	asset, _, err := h.storeFormFile(c, "coverImage", "covers", false)
	if err != nil {
		h.fail(c, err)
		return
	}

	oldKey := user.CoverKey
	err = h.db.Model(user).Updates(map[string]interface{}{
		"cover_url": asset.URL,
		"cover_key": asset.Key,
	}).Error
	if err != nil {
		h.fail(c, err)
		return
	}
	if oldKey != "" {
		h.assets.Delete(oldKey)
	}
	h.ok(c, http.StatusOK, user, "Cover image updated successfully")
}

func (h *Handler) ChannelProfile(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Param("username")))
	if username == "" {
		h.fail(c, response.InvalidArgument("username is required"))
		return
	}

	profile, err := h.queries.ChannelProfile(username, viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

func (h *Handler) WatchHistory(c *gin.Context) {
	videos, err := h.queries.WatchHistoryFeed(viewerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, videos, "Watch history fetched successfully")
}
