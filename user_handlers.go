package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"quickbill/models"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxLogoWidth = 300

// userResponse is the profile payload returned by register/login/profile.
// The token is included only where the original flow issues one.
func userResponse(user *models.User, withToken bool) (gin.H, error) {
	resp := gin.H{
		"id":            user.ID,
		"firstName":     user.FirstName,
		"lastName":      user.LastName,
		"companyName":   user.CompanyName,
		"email":         user.Email,
		"isGstEnabled":  user.IsGstEnabled,
		"gstPercentage": user.GstPercentage,
		"logoUrl":       user.LogoURL,
	}
	if withToken {
		token, err := makeToken(user.ID)
		if err != nil {
			return nil, err
		}
		resp["token"] = token
	}
	return resp, nil
}

func registerHandler(c *gin.Context) {
	var req struct {
		FirstName   string `json:"firstName" binding:"required"`
		LastName    string `json:"lastName"`
		CompanyName string `json:"companyName"`
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(req.FirstName, req.LastName, req.CompanyName, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := userResponse(user, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	resp, err := userResponse(&user, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func getProfileHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	resp, _ := userResponse(user, false)
	c.JSON(http.StatusOK, resp)
}

// updateProfileHandler applies a partial update: a field that is absent from
// the body is left unchanged, a supplied field overrides, and an explicit
// empty string clears (except email, which may not be emptied).
func updateProfileHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		FirstName     *string  `json:"firstName"`
		LastName      *string  `json:"lastName"`
		CompanyName   *string  `json:"companyName"`
		Email         *string  `json:"email"`
		IsGstEnabled  *bool    `json:"isGstEnabled"`
		GstPercentage *float64 `json:"gstPercentage"`
		LogoURL       *string  `json:"logoUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		if *req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email cannot be empty"})
			return
		}
		user.Email = *req.Email
	}
	if req.IsGstEnabled != nil {
		user.IsGstEnabled = *req.IsGstEnabled
	}
	if req.GstPercentage != nil {
		user.GstPercentage = *req.GstPercentage
	}
	if req.LogoURL != nil {
		user.LogoURL = *req.LogoURL
	}
	if err := db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	invalidateIdentity(c.Request.Context(), user.ID)

	// Re-issue the token so the client carries the fresh profile claims.
	resp, err := userResponse(user, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func changePasswordHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid current password"})
		return
	}
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short (min 6)"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	user.HashedPassword = hashed
	if err := db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// uploadLogoHandler stores a company logo for the invoice header. The image
// is decoded and shrunk to a bounded width before it lands on disk.
func uploadLogoHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer src.Close()
	img, err := imaging.Decode(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}
	if img.Bounds().Dx() > maxLogoWidth {
		img = imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)
	}

	dir := filepath.Join(appConfig.UploadBase, "logos")
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	name := fmt.Sprintf("%d-%s.png", user.ID, uuid.NewString())
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	user.LogoURL = "/uploads/logos/" + name
	if err := db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logoUrl": user.LogoURL})
}
