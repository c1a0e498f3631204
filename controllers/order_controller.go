// controllers/order_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkadris/dkadris_backend/models"
	"github.com/dkadris/dkadris_backend/repositories"
	"github.com/dkadris/dkadris_backend/utils"
	"github.com/dkadris/dkadris_backend/websocket"
)

// visitorIDHeader identifies an anonymous storefront session so checkout
// can recover a referral captured earlier in the visit.
const visitorIDHeader = "X-Visitor-ID"

// orderTotal computes price × quantity in minor units. A product of zero or
// less, including an int64 overflow wrapping negative or to zero, is
// rejected here so a poisoned total can never reach the order collection
// and break earnings computation for the attributed code.
func orderTotal(price int64, quantity int) (int64, error) {
	if price <= 0 || quantity <= 0 {
		return 0, errors.New("price and quantity must be positive")
	}
	total := price * int64(quantity)
	if total/price != int64(quantity) || total <= 0 {
		return 0, errors.New("order total overflows")
	}
	return total, nil
}

// OrderController handles checkout and admin order management
type OrderController struct {
	DB         *mongo.Client
	Redis      *redis.Client
	Hub        *websocket.Hub
	orders     *repositories.OrderRepository
	products   *repositories.ProductRepository
	affiliates *repositories.AffiliateRepository
}

// NewOrderController creates a new order controller
func NewOrderController(db *mongo.Client, rdb *redis.Client, hub *websocket.Hub) *OrderController {
	return &OrderController{
		DB:         db,
		Redis:      rdb,
		Hub:        hub,
		orders:     repositories.NewOrderRepository(db),
		products:   repositories.NewProductRepository(db),
		affiliates: repositories.NewAffiliateRepository(db),
	}
}

// resolveReferrer picks the referral code for a new order: an explicit code
// on the request wins, otherwise the visitor's cached session referral is
// used. Codes that do not belong to any partner are dropped so orders never
// carry dangling attributions.
func (oc *OrderController) resolveReferrer(ctx context.Context, c echo.Context, explicit string) string {
	code := utils.SanitizeReferralCode(explicit)
	if code == "" {
		visitorID := c.Request().Header.Get(visitorIDHeader)
		code = utils.LookupReferralToken(ctx, oc.Redis, visitorID)
	}
	if code == "" {
		return ""
	}

	if _, err := oc.affiliates.FindByCode(ctx, code); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("Failed to resolve referral code %s: %v", code, err)
		}
		return ""
	}
	return code
}

// Checkout places a storefront order
func (oc *OrderController) Checkout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product and a quantity of at least 1 are required",
		})
	}

	product, err := oc.products.FindByID(ctx, req.ProductID)
	if err != nil || !product.Whitelisted {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not available",
		})
	}

	customerEmail := ""
	if req.CustomerEmail != "" {
		customerEmail, err = utils.SanitizeEmail(req.CustomerEmail)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid customer email",
			})
		}
	}

	total, err := orderTotal(product.Price, req.Quantity)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order total",
		})
	}

	now := time.Now()
	order := models.Order{
		ID:            uuid.NewString(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      req.Quantity,
		Total:         total,
		Status:        models.OrderStatusPending,
		Timestamp:     now,
		ReferrerCode:  oc.resolveReferrer(ctx, c, req.ReferrerCode),
		CustomerEmail: customerEmail,
		CustomerName:  utils.SanitizeInput(req.CustomerName),
	}

	if err := oc.orders.Insert(ctx, order); err != nil {
		log.Printf("Failed to insert order for product %s: %v", product.ID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	if oc.Hub != nil {
		oc.Hub.Broadcast(websocket.Event{
			Type:    websocket.EventTypeOrderCreated,
			Message: "New order placed",
			Data:    order,
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Order placed",
		Data:    order,
	})
}

// ListOrders returns every order for the admin dashboard
func (oc *OrderController) ListOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.orders.GetOrders(ctx)
	if err != nil {
		log.Printf("Failed to load orders: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load orders",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Orders loaded",
		Data:    orders,
	})
}

// UpdateOrderStatus performs an admin status transition
func (oc *OrderController) UpdateOrderStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")

	var req models.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Status must be pending, fulfilled or cancelled",
		})
	}

	if err := oc.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Order not found",
			})
		}
		log.Printf("Failed to update order %s status: %v", id, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update order",
		})
	}

	order, err := oc.orders.FindByID(ctx, id)
	if err == nil && oc.Hub != nil {
		oc.Hub.Broadcast(websocket.Event{
			Type:    websocket.EventTypeOrderUpdated,
			Message: "Order status changed",
			Data:    order,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order updated",
		Data:    order,
	})
}
