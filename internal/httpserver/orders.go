package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"ecoshop/internal/domain"
	ordersvc "ecoshop/internal/service/order"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type placeOrderRequest struct {
	UserID          looseInt             `json:"user_id"`
	Items           []ordersvc.ItemInput `json:"items"`
	ShippingAddress string               `json:"shipping_address"`
	CustomerName    string               `json:"customer_name"`
	PaymentMethod   string               `json:"payment_method"`
}

// cartCleaner is the slice of the cart service checkout depends on.
type cartCleaner interface {
	RemoveMany(ctx context.Context, userID int64, productIDs []int64) error
}

// placeOrderHandler places the order and then removes the ordered products
// from the user's cart. Cart cleanup is best effort and never changes the
// response once the order exists.
func placeOrderHandler(orders OrderService, cart cartCleaner, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, logger, err)
			return
		}
		order, err := orders.PlaceOrder(c.Request.Context(), ordersvc.PlaceOrderInput{
			UserID:          int64(req.UserID),
			Items:           req.Items,
			ShippingAddress: req.ShippingAddress,
			CustomerName:    req.CustomerName,
			PaymentMethod:   req.PaymentMethod,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}

		if err := cart.RemoveMany(c.Request.Context(), order.UserID, order.ProductIDs()); err != nil {
			logger.Warn("cart cleanup after order failed",
				zap.Int64("order_id", order.ID),
				zap.Int64("user_id", order.UserID),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err))
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}

// listOrdersHandler lists one user's orders, or every order when user_id is absent.
func listOrdersHandler(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter domain.OrderFilter
		if raw := c.Query("user_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				writeError(c, logger, domain.Invalid("user_id", "invalid user_id %q", raw))
				return
			}
			filter.UserID = id
		}
		list, err := svc.ListOrders(c.Request.Context(), filter)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func getOrderHandler(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "order_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		order, err := svc.GetOrder(c.Request.Context(), id)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
