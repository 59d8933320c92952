package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-api/services"
	"github.com/rentwheels/car-rental-api/store"
)

// OrderController serves the reservation endpoints.
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an order controller over the order service
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrderRequest represents the request body for creating an order.
// The status field is accepted for compatibility with the storefront client
// but ignored: new orders always start pending, and the total price is
// recomputed server-side from the car's daily rate.
type CreateOrderRequest struct {
	Customer struct {
		Name                 string `json:"name" binding:"required"`
		PhoneNumber          string `json:"phoneNumber" binding:"required"`
		Email                string `json:"email" binding:"required,email"`
		DriversLicenseNumber string `json:"driversLicenseNumber" binding:"required"`
	} `json:"customer" binding:"required"`
	Car struct {
		VIN string `json:"vin" binding:"required"`
	} `json:"car" binding:"required"`
	Rental struct {
		StartDate    string `json:"startDate" binding:"required"`
		RentalPeriod int    `json:"rentalPeriod" binding:"required,gte=1"`
	} `json:"rental" binding:"required"`
	Status string `json:"status"`
}

// CreateOrder handles POST /orders - submits a reservation request
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
			"code":  "VALIDATION_ERROR",
		})
		return
	}

	input := services.CreateOrderInput{
		VIN:          req.Car.VIN,
		StartDate:    req.Rental.StartDate,
		RentalPeriod: req.Rental.RentalPeriod,
	}
	input.Customer.Name = req.Customer.Name
	input.Customer.PhoneNumber = req.Customer.PhoneNumber
	input.Customer.Email = req.Customer.Email
	input.Customer.DriversLicenseNumber = req.Customer.DriversLicenseNumber

	order, err := ctrl.orders.Create(c.Request.Context(), input)
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"code":  "VALIDATION_ERROR",
		})
		return
	case errors.Is(err, store.ErrCarUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Car is not available"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      order.ID,
		"success": true,
	})
}

// ConfirmOrder handles POST /orders/:id/confirm - confirms a pending order
func (ctrl *OrderController) ConfirmOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	err := ctrl.orders.Confirm(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrOrderNotFound), errors.Is(err, store.ErrOrderNotPending):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Failed to confirm order. Order not found or not in pending state.",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %d confirmed successfully", id),
	})
}

// CancelOrder handles POST /orders/:id/cancel - cancels a pending order and
// makes the car bookable again
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	err := ctrl.orders.Cancel(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrOrderNotFound), errors.Is(err, store.ErrOrderNotPending):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Failed to cancel order. Order not found or not in pending state.",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %d cancelled successfully", id),
	})
}

// ListOrders handles GET /orders - returns every order
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctrl.orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// orderIDParam parses the :id path parameter, writing a 400 on failure.
func orderIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return id, true
}
