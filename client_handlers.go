package main

import (
	"errors"
	"net/http"

	"quickbill/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadOwnedClient fetches a client by path id and enforces ownership. An
// unknown id is a 404; a client owned by someone else is a 403 and nothing
// more is revealed about it.
func loadOwnedClient(c *gin.Context, userID uint) (*models.Client, bool) {
	var client models.Client
	if err := db.WithContext(c.Request.Context()).First(&client, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		}
		return nil, false
	}
	if client.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return nil, false
	}
	return &client, true
}

func listClientsHandler(c *gin.Context) {
	userID := currentUserID(c)
	q := db.WithContext(c.Request.Context()).Where("user_id = ?", userID)
	if search := c.Query("search"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	var clients []models.Client
	if err := q.Order("name asc").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if clients == nil {
		clients = make([]models.Client, 0)
	}
	c.JSON(http.StatusOK, clients)
}

func createClientHandler(c *gin.Context) {
	userID := currentUserID(c)
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client := models.Client{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func getClientHandler(c *gin.Context) {
	client, ok := loadOwnedClient(c, currentUserID(c))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

func updateClientHandler(c *gin.Context) {
	client, ok := loadOwnedClient(c, currentUserID(c))
	if !ok {
		return
	}
	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		client.Name = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email cannot be empty"})
			return
		}
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if err := db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func deleteClientHandler(c *gin.Context) {
	client, ok := loadOwnedClient(c, currentUserID(c))
	if !ok {
		return
	}
	if err := db.WithContext(c.Request.Context()).Delete(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client removed successfully"})
}
