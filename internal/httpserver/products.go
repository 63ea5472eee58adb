package httpserver

import (
	"net/http"

	"ecoshop/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type priceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

func listProductsHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "product_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		p, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func bulkInsertProductsHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []domain.Product
		if err := bindJSON(c, &products); err != nil {
			writeError(c, logger, err)
			return
		}
		inserted, err := svc.BulkInsert(c.Request.Context(), products)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Products inserted",
			"inserted": inserted,
			"skipped":  len(products) - inserted,
		})
	}
}

func updatePriceHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "product_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		var req priceRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, logger, err)
			return
		}
		if req.Price == nil {
			writeError(c, logger, domain.Invalid("price", "price is required"))
			return
		}
		if err := svc.UpdatePrice(c.Request.Context(), id, domain.NewMoney(*req.Price)); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Price updated"))
	}
}

func deleteProductHandler(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "product_id")
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, message("Product deleted"))
	}
}

func listCategoriesHandler(svc CategoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
