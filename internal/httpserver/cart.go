package httpserver

import (
	"net/http"

	"ecoshop/internal/domain"
	cartsvc "ecoshop/internal/service/cart"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type cartItemRequest struct {
	UserID    looseInt  `json:"user_id"`
	ProductID looseInt  `json:"product_id"`
	Quantity  *looseInt `json:"quantity"`
}

func addCartItemHandler(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, logger, err)
			return
		}
		qty := cartsvc.DefaultQuantity
		if req.Quantity != nil {
			qty = int(*req.Quantity)
		}
		if _, err := svc.AddItem(c.Request.Context(), int64(req.UserID), int64(req.ProductID), qty); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Item added to cart"))
	}
}

func updateCartItemHandler(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, logger, err)
			return
		}
		if req.Quantity == nil {
			writeError(c, logger, domain.Invalid("quantity", "missing quantity"))
			return
		}
		if err := svc.SetQuantity(c.Request.Context(), int64(req.UserID), int64(req.ProductID), int(*req.Quantity)); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Cart updated"))
	}
}

func listCartHandler(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathID(c, "user_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		items, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func clearCartHandler(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathID(c, "user_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if err := svc.Clear(c.Request.Context(), userID); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Cart cleared"))
	}
}

func removeCartItemHandler(svc CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathID(c, "user_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		productID, err := pathID(c, "product_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if err := svc.RemoveItem(c.Request.Context(), userID, productID); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Item removed from cart"))
	}
}
