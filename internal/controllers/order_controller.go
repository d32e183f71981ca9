package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) Create(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	var in services.NewOrder
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid order: "+err.Error()))
		return
	}
	order, err := oc.orders.Create(c.Request.Context(), id.UserID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (oc *OrderController) Mine(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	orders, err := oc.orders.Mine(c.Request.Context(), id.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) All(c *gin.Context) {
	orders, err := oc.orders.All(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/:id/status. Any status may follow any other.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, apperr.Binding(err, "status is required"))
		return
	}
	order, err := oc.orders.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
