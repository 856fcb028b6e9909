package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/service"
	"github.com/nsharma/shopmitra-backend/internal/middleware"
)

type OrderController struct {
	orderService  service.OrderService
	reportService service.ReportService
}

func NewOrderController(orderService service.OrderService, reportService service.ReportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		reportService: reportService,
	}
}

type ShippingInfoRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
}

type CreateOrderRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,gt=0"`
	} `json:"items"`
	Shipping      ShippingInfoRequest `json:"shipping_info" binding:"required"`
	PaymentMethod string              `json:"payment_method"`
	GatewayID     string              `json:"gateway_id"`
	GatewayStatus string              `json:"gateway_status"`
	TaxPrice      float64             `json:"tax_price"`
	ShippingPrice float64             `json:"shipping_price"`
	TotalPrice    float64             `json:"total_price" binding:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MarkCodPaidRequest struct {
	Paid *bool `json:"paid"`
}

// CreateOrder places a new order
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create order", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create order request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	input := service.CreateOrderInput{
		Shipping: model.ShippingInfo{
			FullName:   req.Shipping.FullName,
			Phone:      req.Shipping.Phone,
			Line1:      req.Shipping.Line1,
			Line2:      req.Shipping.Line2,
			City:       req.Shipping.City,
			State:      req.Shipping.State,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		},
		PaymentMethod: req.PaymentMethod,
		GatewayID:     req.GatewayID,
		GatewayStatus: req.GatewayStatus,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := ctrl.orderService.CreateOrder(customerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoOrderItems):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Order must contain at least one item",
			})
		case errors.Is(err, service.ErrBadPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unsupported payment method",
			})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be at least 1",
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"customer_id": customerID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create order",
			})
		}
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"customer_id":  customerID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetMyOrders returns the caller's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetCustomerOrders(customerID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"customer_id": customerID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns a single order to its owner or an admin
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	role, _ := middleware.GetUserRole(c)
	order, err := ctrl.orderService.GetOrder(customerID, role, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderAccessDenied):
			log.Warn("Access to order denied", map[string]interface{}{
				"customer_id": customerID,
				"order_id":    orderID,
			})
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access to order denied",
			})
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"order_id": orderID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CancelOrder cancels the caller's own order
// PUT /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.CancelOrder(customerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access to order denied",
			})
		case errors.Is(err, service.ErrOrderAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is already cancelled",
			})
		case errors.Is(err, service.ErrOrderAlreadyDelivered):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Delivered order cannot be cancelled",
			})
		case errors.Is(err, service.ErrCodAlreadyCollected):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cash already collected for this order",
			})
		case errors.Is(err, service.ErrOrderConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order was modified concurrently",
			})
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"order_id": orderID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to cancel order",
			})
		}
		return
	}

	log.Info("Order cancelled successfully", map[string]interface{}{
		"customer_id": customerID,
		"order_id":    orderID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// GetAllOrders returns every order, newest first
// GET /api/v1/admin/orders
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to fetch all orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order to a new status
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update order status request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid order status",
			})
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order was modified concurrently",
			})
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
				"status":   req.Status,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update order status",
			})
		}
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// MarkCodPaid records cash collection for a COD order
// PATCH /api/v1/admin/orders/:id/cod-paid
func (ctrl *OrderController) MarkCodPaid(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	// Absent body or field means "collected".
	paid := true
	var req MarkCodPaidRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Paid != nil {
		paid = *req.Paid
	}

	order, err := ctrl.orderService.MarkCodPaid(orderID, paid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrNotCodOrder):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Order is not cash on delivery",
			})
		default:
			log.Error("Failed to mark COD payment", err, map[string]interface{}{
				"order_id": orderID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to mark COD payment",
			})
		}
		return
	}

	log.Info("COD payment marked successfully", map[string]interface{}{
		"order_id": orderID,
		"paid":     paid,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "COD payment recorded successfully",
		"order":   order,
	})
}

// ExportOrders streams an xlsx report of all orders
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, filename, err := ctrl.reportService.ExportOrders()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export orders",
		})
		return
	}

	log.Info("Orders exported successfully", map[string]interface{}{
		"filename": filename,
		"size":     buf.Len(),
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
