package main

import (
	"errors"
	"net/http"
	"time"

	"quickbill/models"
	"quickbill/pkg/invoicing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseDate accepts the two timestamp shapes clients send for due dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// loadOwnedInvoice fetches an invoice by path id and enforces ownership.
// Unknown id is 404; an invoice owned by another user is 403 without leaking
// anything else about it.
func loadOwnedInvoice(c *gin.Context, userID uint) (*models.Invoice, bool) {
	var invoice models.Invoice
	if err := db.WithContext(c.Request.Context()).First(&invoice, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		}
		return nil, false
	}
	if invoice.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return nil, false
	}
	return &invoice, true
}

// nextInvoiceNumber allocates the next number for the owner's current-day
// bucket by reading the most recently created invoice under the same literal
// prefix. The read and the subsequent insert are not atomic; the composite
// unique index catches the race.
func nextInvoiceNumber(c *gin.Context, userID uint, generationDate time.Time) (string, error) {
	prefix := invoicing.NumberPrefix(generationDate)
	lastNumber := ""
	var last models.Invoice
	err := db.WithContext(c.Request.Context()).
		Where("user_id = ? AND invoice_number LIKE ?", userID, prefix+"%").
		Order("created_at desc").
		First(&last).Error
	if err == nil {
		lastNumber = last.InvoiceNumber
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return invoicing.NextNumber(lastNumber, prefix)
}

func createInvoiceHandler(c *gin.Context) {
	userID := currentUserID(c)
	var req struct {
		Client  uint                 `json:"client" binding:"required"`
		DueDate string               `json:"dueDate" binding:"required"`
		Items   []models.InvoiceItem `json:"items" binding:"required"`
		Status  string               `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice must have at least one item."})
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date"})
		return
	}
	status := invoicing.StatusDraft
	if req.Status != "" {
		if !invoicing.IsValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		// overdue is never a legal write value
		status = invoicing.NormalizeStatus(req.Status)
	}

	var client models.Client
	if err := db.WithContext(c.Request.Context()).First(&client, req.Client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
		return
	}
	if client.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	// The server owns invoiceNumber and totalAmount; anything the client
	// supplied for them is ignored.
	var created *models.Invoice
	for attempt := 0; attempt < 2; attempt++ {
		number, err := nextInvoiceNumber(c, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		invoice := models.Invoice{
			UserID:        userID,
			ClientID:      client.ID,
			InvoiceNumber: number,
			Items:         req.Items,
			TotalAmount:   invoicing.Total(req.Items),
			Status:        status,
			DueDate:       dueDate,
			PaymentMethod: invoicing.NormalizePaymentMethod(status, "", ""),
		}
		if err := db.WithContext(c.Request.Context()).Create(&invoice).Error; err != nil {
			if isUniqueConstraintError(err) {
				// lost the allocation race; re-read the sequence once
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}
		created = &invoice
		break
	}
	if created == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate invoice number, please retry"})
		return
	}
	created.Client = client
	c.JSON(http.StatusCreated, created)
}

func listInvoicesHandler(c *gin.Context) {
	userID := currentUserID(c)
	search := c.Query("search")
	clientFilter := c.Query("client")

	q := db.WithContext(c.Request.Context()).Where("user_id = ?", userID)
	if clientFilter != "" {
		q = q.Where("client_id = ?", clientFilter)
	}
	if search != "" {
		if clientFilter != "" {
			// already narrowed to one client, match on the number only
			q = q.Where("invoice_number ILIKE ?", "%"+search+"%")
		} else {
			matching := db.Model(&models.Client{}).Select("id").
				Where("user_id = ? AND name ILIKE ?", userID, "%"+search+"%")
			q = q.Where("invoice_number ILIKE ? OR client_id IN (?)", "%"+search+"%", matching)
		}
	}

	var invoices []models.Invoice
	if err := q.Preload("Client").Order("created_at desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	today := time.Now()
	for i := range invoices {
		invoices[i].Status = invoicing.DeriveDisplayStatus(invoices[i].Status, invoices[i].DueDate, today)
	}
	if invoices == nil {
		invoices = make([]models.Invoice, 0)
	}
	c.JSON(http.StatusOK, invoices)
}

func getInvoiceHandler(c *gin.Context) {
	invoice, ok := loadOwnedInvoice(c, currentUserID(c))
	if !ok {
		return
	}
	if err := db.WithContext(c.Request.Context()).First(&invoice.Client, invoice.ClientID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	// single-get and list must agree on the displayed status
	invoice.Status = invoicing.DeriveDisplayStatus(invoice.Status, invoice.DueDate, time.Now())
	c.JSON(http.StatusOK, invoice)
}

func updateInvoiceHandler(c *gin.Context) {
	invoice, ok := loadOwnedInvoice(c, currentUserID(c))
	if !ok {
		return
	}
	var req struct {
		Items         []models.InvoiceItem `json:"items"`
		Status        *string              `json:"status"`
		DueDate       *string              `json:"dueDate"`
		PaymentMethod *string              `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Items != nil {
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice must have at least one item."})
			return
		}
		invoice.Items = req.Items
		invoice.TotalAmount = invoicing.Total(req.Items)
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date"})
			return
		}
		invoice.DueDate = dueDate
	}

	// A legacy persisted overdue row re-saves as pending even when the
	// request leaves status untouched.
	status := invoicing.NormalizeStatus(invoice.Status)
	if req.Status != nil {
		if !invoicing.IsValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = invoicing.NormalizeStatus(*req.Status)
	}
	invoice.Status = status

	incoming := ""
	if req.PaymentMethod != nil {
		if !invoicing.IsValidPaymentMethod(*req.PaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
			return
		}
		incoming = *req.PaymentMethod
	}
	invoice.PaymentMethod = invoicing.NormalizePaymentMethod(status, incoming, invoice.PaymentMethod)

	if err := db.WithContext(c.Request.Context()).Save(invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if err := db.WithContext(c.Request.Context()).First(&invoice.Client, invoice.ClientID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func deleteInvoiceHandler(c *gin.Context) {
	invoice, ok := loadOwnedInvoice(c, currentUserID(c))
	if !ok {
		return
	}
	if err := db.WithContext(c.Request.Context()).Delete(invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice removed successfully"})
}
