package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nsharma/shopmitra-backend/internal/app/model"
	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAccessDenied     = errors.New("access to order denied")
	ErrNoOrderItems          = errors.New("order must contain at least one item")
	ErrBadPaymentMethod      = errors.New("unsupported payment method")
	ErrBadOrderStatus        = errors.New("invalid order status")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	ErrOrderAlreadyDelivered = errors.New("delivered order cannot be cancelled")
	ErrCodAlreadyCollected   = errors.New("cash already collected for this order")
	ErrNotCodOrder           = errors.New("order is not cash on delivery")
	ErrOrderConflict         = errors.New("order was modified concurrently")
)

type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	Items         []OrderItemInput   `json:"items"`
	Shipping      model.ShippingInfo `json:"shipping_info"`
	PaymentMethod string             `json:"payment_method"`
	GatewayID     string             `json:"gateway_id"`
	GatewayStatus string             `json:"gateway_status"`
	TaxPrice      float64            `json:"tax_price"`
	ShippingPrice float64            `json:"shipping_price"`
	TotalPrice    float64            `json:"total_price"`
}

type OrderService interface {
	CreateOrder(customerID uint, input CreateOrderInput) (*model.Order, error)
	GetOrder(requesterID uint, requesterRole model.UserRole, orderID uint) (*model.Order, error)
	GetCustomerOrders(customerID uint) ([]model.Order, error)
	GetAllOrders() ([]model.Order, error)
	CancelOrder(customerID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	MarkCodPaid(orderID uint, paid bool) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func generateOrderNumber() string {
	// Date prefix for operators, uuid fragment for uniqueness.
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

// normalizePaymentMethod maps the caller-supplied method onto the two
// supported values. An empty method means Online.
func normalizePaymentMethod(method string) (model.PaymentMethod, error) {
	switch model.PaymentMethod(method) {
	case "":
		return model.PaymentMethodOnline, nil
	case model.PaymentMethodOnline:
		return model.PaymentMethodOnline, nil
	case model.PaymentMethodCOD:
		return model.PaymentMethodCOD, nil
	}
	return "", ErrBadPaymentMethod
}

// CreateOrder snapshots the ordered products into order lines and builds the
// payment block for exactly one method. COD orders never carry gateway
// fields and always start with the cash uncollected.
func (s *orderService) CreateOrder(customerID uint, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"customer_id":    customerID,
		"item_count":     len(input.Items),
		"payment_method": input.PaymentMethod,
	})

	if len(input.Items) == 0 {
		logger.Warn("Order creation rejected: no items", map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, ErrNoOrderItems
	}

	method, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		logger.Warn("Order creation rejected: bad payment method", map[string]interface{}{
			"customer_id":    customerID,
			"payment_method": input.PaymentMethod,
		})
		return nil, err
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		logger.Error("Failed to fetch products for order", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	productByID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	orderItems := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			logger.Warn("Order creation rejected: product not found", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  item.ProductID,
			})
			return nil, ErrProductNotFound
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.EffectivePrice(),
			ImageURL:  product.ImageURL,
		})
	}

	payment := model.PaymentInfo{Method: method}
	if method == model.PaymentMethodOnline {
		payment.GatewayID = input.GatewayID
		payment.GatewayStatus = input.GatewayStatus
	}

	order := &model.Order{
		OrderNumber:   generateOrderNumber(),
		CustomerID:    customerID,
		ShippingInfo:  input.Shipping,
		PaymentInfo:   payment,
		TaxPrice:      input.TaxPrice,
		ShippingPrice: input.ShippingPrice,
		TotalPrice:    input.TotalPrice,
		OrderStatus:   model.OrderStatusProcessing,
		OrderItems:    orderItems,
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":       order.ID,
		"order_number":   order.OrderNumber,
		"customer_id":    customerID,
		"payment_method": method,
	})
	return order, nil
}

// GetOrder returns the order to its owner or to an admin. Everyone else is
// denied even when the order exists.
func (s *orderService) GetOrder(requesterID uint, requesterRole model.UserRole, orderID uint) (*model.Order, error) {
	logger.Debug("Fetching order", map[string]interface{}{
		"order_id":     orderID,
		"requester_id": requesterID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.CustomerID != requesterID && requesterRole != model.RoleAdmin {
		logger.Warn("Access to order denied", map[string]interface{}{
			"order_id":     orderID,
			"requester_id": requesterID,
			"owner_id":     order.CustomerID,
		})
		return nil, ErrOrderAccessDenied
	}

	return order, nil
}

func (s *orderService) GetCustomerOrders(customerID uint) ([]model.Order, error) {
	logger.Debug("Fetching customer orders", map[string]interface{}{
		"customer_id": customerID,
	})

	orders, err := s.orderRepo.FindByCustomerID(customerID)
	if err != nil {
		logger.Error("Failed to fetch customer orders", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Customer orders fetched successfully", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(orders),
	})
	return orders, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	logger.Debug("Fetching all orders", nil)

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch all orders", err, nil)
		return nil, err
	}

	logger.Info("All orders fetched successfully", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

// CancelOrder cancels the caller's own order. Guards run in a fixed order:
// already cancelled, already delivered, then COD cash collected. The final
// write is a conditional UPDATE scoped on the current non-terminal status,
// so a racing cancel or delivery makes exactly one writer win.
func (s *orderService) CancelOrder(customerID, orderID uint) (*model.Order, error) {
	logger.Info("Cancelling order", map[string]interface{}{
		"order_id":    orderID,
		"customer_id": customerID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for cancellation", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for cancellation", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.CustomerID != customerID {
		logger.Warn("Cancellation denied: not the order owner", map[string]interface{}{
			"order_id":     orderID,
			"requester_id": customerID,
			"owner_id":     order.CustomerID,
		})
		return nil, ErrOrderAccessDenied
	}

	switch {
	case order.OrderStatus == model.OrderStatusCancelled:
		logger.Warn("Cancellation rejected: already cancelled", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderAlreadyCancelled
	case order.OrderStatus == model.OrderStatusDelivered:
		logger.Warn("Cancellation rejected: already delivered", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderAlreadyDelivered
	case order.PaymentInfo.IsCOD() && order.PaymentInfo.CodPaid:
		logger.Warn("Cancellation rejected: COD cash already collected", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrCodAlreadyCollected
	}

	now := time.Now()
	affected, err := s.orderRepo.Transition(orderID,
		[]model.OrderStatus{model.OrderStatusProcessing, model.OrderStatusShipped},
		map[string]interface{}{
			"order_status": model.OrderStatusCancelled,
			"cancelled_at": &now,
		})
	if err != nil {
		logger.Error("Failed to cancel order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if affected == 0 {
		// Another transition slipped in between the read and the write.
		logger.Warn("Cancellation lost to a concurrent transition", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderConflict
	}

	logger.Info("Order cancelled successfully", map[string]interface{}{
		"order_id":    orderID,
		"customer_id": customerID,
	})
	return s.orderRepo.FindByID(orderID)
}

// UpdateOrderStatus is the admin transition. Only the enum is validated, so
// an admin may jump straight from Processing to Delivered. Entering
// Delivered stamps the delivery time and settles COD cash; entering
// Cancelled stamps the cancellation time.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !model.ValidOrderStatus(status) {
		logger.Warn("Order status update rejected: invalid status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return nil, ErrBadOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for status update", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"order_status": status,
	}
	switch status {
	case model.OrderStatusDelivered:
		updates["delivered_at"] = &now
		if order.PaymentInfo.IsCOD() {
			updates["payment_cod_paid"] = true
		}
	case model.OrderStatusCancelled:
		updates["cancelled_at"] = &now
	}

	affected, err := s.orderRepo.Transition(orderID,
		[]model.OrderStatus{order.OrderStatus},
		updates)
	if err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if affected == 0 {
		logger.Warn("Status update lost to a concurrent transition", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderConflict
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return s.orderRepo.FindByID(orderID)
}

// MarkCodPaid records cash collection for a COD order. Online orders are
// rejected; their settlement lives with the gateway.
func (s *orderService) MarkCodPaid(orderID uint, paid bool) (*model.Order, error) {
	logger.Info("Marking COD payment", map[string]interface{}{
		"order_id": orderID,
		"paid":     paid,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for COD payment", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for COD payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if !order.PaymentInfo.IsCOD() {
		logger.Warn("COD payment rejected: not a COD order", map[string]interface{}{
			"order_id":       orderID,
			"payment_method": order.PaymentInfo.Method,
		})
		return nil, ErrNotCodOrder
	}

	if err := s.orderRepo.UpdateCodPaid(orderID, paid); err != nil {
		logger.Error("Failed to mark COD payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("COD payment marked successfully", map[string]interface{}{
		"order_id": orderID,
		"paid":     paid,
	})
	return s.orderRepo.FindByID(orderID)
}
