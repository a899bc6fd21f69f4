package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
)

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperr.Validation("price must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Zero, apperr.Validation("price must be non-negative")
	}
	if d.Exponent() < -2 {
		return decimal.Zero, apperr.Validation("price has more than 2 decimals")
	}
	return d, nil
}

// listOnlyHandler godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Param    limit  query int false "page size" default(20)
// @Param    offset query int false "offset"    default(0)
// @Success  200 {object} catalog.ListResponse
// @Router   /products [get]
func listOnlyHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := httpx.Page(c)
		items, err := repo.List(c.Request.Context(), catalog.Query{Limit: limit, Offset: offset})
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{Limit: limit, Offset: offset, Items: items})
	}
}

// searchHandler godoc
// @Summary  Search products by name or description
// @Tags     products
// @Produce  json
// @Param    q      query string true  "search text (min 2 chars)"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Success  200 {object} catalog.ListResponse
// @Failure  400 {object} httpx.HTTPError
// @Router   /products/search [get]
func searchHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if len([]rune(q)) < 2 {
			httpx.BadRequest(c, "q must have at least 2 characters")
			return
		}
		limit, offset := httpx.Page(c)
		items, err := repo.List(c.Request.Context(), catalog.Query{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{Q: q, Limit: limit, Offset: offset, Items: items})
	}
}

// getProductHandler godoc
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} catalog.Product
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [get]
func getProductHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body catalog.CreateProductRequest true "product"
// @Success  201 {object} catalog.Product
// @Failure  400 {object} httpx.HTTPError
// @Router   /products [post]
func createProductHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Price) == "" {
			httpx.BadRequest(c, "name and price are required")
			return
		}
		if in.Stock < 0 {
			httpx.BadRequest(c, "stock must be non-negative")
			return
		}
		price, err := parsePrice(in.Price)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}

		p := &catalog.Product{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Price:       price,
			Stock:       in.Stock,
			ImageURL:    in.ImageURL,
			CategoryID:  in.CategoryID,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			httpx.Error(c, log, err)
			return
		}
		out, err := repo.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// updateProductHandler godoc
// @Summary  Partially update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                       true "product id"
// @Param    body body catalog.UpdateProductRequest true "fields to change"
// @Success  200 {object} catalog.Product
// @Failure  400 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [put]
func updateProductHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if in.Stock != nil && *in.Stock < 0 {
			httpx.BadRequest(c, "stock must be non-negative")
			return
		}

		ctx := c.Request.Context()
		p, err := repo.GetByID(ctx, c.Param("id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		if in.Name != "" {
			p.Name = in.Name
		}
		if in.Description != "" {
			p.Description = in.Description
		}
		if in.ImageURL != "" {
			p.ImageURL = in.ImageURL
		}
		if in.Price != "" {
			if p.Price, err = parsePrice(in.Price); err != nil {
				httpx.Error(c, log, err)
				return
			}
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}

		if err := repo.Update(ctx, p); err != nil {
			httpx.Error(c, log, err)
			return
		}
		out, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteProductHandler godoc
// @Summary  Delete a product
// @Tags     products
// @Security BearerAuth
// @Param    id path string true "product id"
// @Success  204
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [delete]
func deleteProductHandler(repo catalog.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		if !ok {
			httpx.Error(c, log, catalog.ErrNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
