package httpserver

import (
	"net/http"
	"strconv"

	"ecoshop/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type favoriteRequest struct {
	UserID    looseInt `json:"user_id"`
	ProductID looseInt `json:"product_id"`
}

func addFavoriteHandler(svc FavoriteService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req favoriteRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, logger, err)
			return
		}
		if _, err := svc.Add(c.Request.Context(), int64(req.UserID), int64(req.ProductID)); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, message("Added to favorites"))
	}
}

// removeFavoriteHandler reads user_id from the JSON body, falling back to the
// query string for clients that cannot send a body with DELETE.
func removeFavoriteHandler(svc FavoriteService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := pathID(c, "product_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		var req favoriteRequest
		if c.Request.ContentLength > 0 {
			if err := bindJSON(c, &req); err != nil {
				writeError(c, logger, err)
				return
			}
		}
		userID := int64(req.UserID)
		if userID == 0 {
			if raw := c.Query("user_id"); raw != "" {
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					writeError(c, logger, domain.Invalid("user_id", "invalid user_id %q", raw))
					return
				}
				userID = n
			}
		}
		if err := svc.Remove(c.Request.Context(), userID, productID); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Removed from favorites"))
	}
}

func listFavoritesHandler(svc FavoriteService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathID(c, "user_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		products, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
