package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/services"
)

// DeliveryController serves the fulfilment panel used by admin and delivery staff.
type DeliveryController struct {
	orders *services.OrderService
}

func NewDeliveryController(orders *services.OrderService) *DeliveryController {
	return &DeliveryController{orders: orders}
}

// Pending lists orders not yet delivered or cancelled, oldest first.
func (dc *DeliveryController) Pending(c *gin.Context) {
	orders, err := dc.orders.Open(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (dc *DeliveryController) UpdateStatus(c *gin.Context) {
	var body struct {
		NewStatus string `json:"newStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, apperr.Binding(err, "Invalid new status."))
		return
	}
	orderID := c.Param("orderId")
	order, err := dc.orders.SetDeliveryStatus(c.Request.Context(), orderID, body.NewStatus)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order %s status updated to %s.", orderID, body.NewStatus),
		"order":   order,
	})
}
