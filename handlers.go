package main

import (
	"net/http"
	"time"

	"quickbill/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func setupRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Invoice App Backend is Running!")
	})
	r.Static("/uploads", appConfig.UploadBase)

	api := r.Group("/api")
	api.POST("/users/register", registerHandler)
	api.POST("/users/login", loginHandler)

	authGroup := api.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/users/profile", getProfileHandler)
	authGroup.PUT("/users/profile", updateProfileHandler)
	authGroup.PUT("/users/change-password", changePasswordHandler)
	authGroup.POST("/users/logo", uploadLogoHandler)

	authGroup.GET("/clients", listClientsHandler)
	authGroup.POST("/clients", createClientHandler)
	authGroup.GET("/clients/:id", getClientHandler)
	authGroup.PUT("/clients/:id", updateClientHandler)
	authGroup.DELETE("/clients/:id", deleteClientHandler)

	authGroup.GET("/invoices", listInvoicesHandler)
	authGroup.POST("/invoices", createInvoiceHandler)
	authGroup.GET("/invoices/:id", getInvoiceHandler)
	authGroup.PUT("/invoices/:id", updateInvoiceHandler)
	authGroup.DELETE("/invoices/:id", deleteInvoiceHandler)

	authGroup.GET("/analytics/summary", analyticsSummaryHandler)
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Next()
		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		idFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id in token"})
			c.Abort()
			return
		}
		userID := uint(idFloat)

		// Confirm the account still exists; a short-lived cache entry skips
		// the DB hit on hot paths.
		ctx := c.Request.Context()
		if !cachedIdentityExists(ctx, userID) {
			var user models.User
			if err := db.WithContext(ctx).Select("id").First(&user, userID).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				c.Abort()
				return
			}
			cacheIdentity(ctx, userID)
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// currentUserID returns the authenticated owner id set by jwtAuthMiddleware.
func currentUserID(c *gin.Context) uint {
	id, _ := c.Get("user_id")
	userID, _ := id.(uint)
	return userID
}

// currentUser fetches the full account record for the authenticated user.
func currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := db.WithContext(c.Request.Context()).First(&user, currentUserID(c)).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// makeToken issues the access token carried by every authenticated call.
func makeToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}
