package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/cart"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/user"
)

// getCartHandler godoc
// @Summary  Caller's cart, created on first use
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} cart.DTO
// @Router   /cart [get]
func getCartHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		dto, err := carts.View(c.Request.Context(), id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// cartCountHandler godoc
// @Summary  Number of items in the caller's cart
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]int
// @Router   /cart/count [get]
func cartCountHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		n, err := carts.ItemCount(c.Request.Context(), id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}

// getCartByIDHandler godoc
// @Summary  Cart by id; other users' carts are reported as not found
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "cart id"
// @Success  200 {object} cart.DTO
// @Failure  404 {object} httpx.HTTPError
// @Router   /cart/{id} [get]
func getCartByIDHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		dto, err := carts.ViewByID(c.Request.Context(), c.Param("id"))
		if err == nil && dto.UserID != id.UserID && !id.IsAdmin() {
			err = cart.ErrCartNotFound
		}
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// getUserCartHandler godoc
// @Summary  Any user's cart
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Param    user_id path string true "user id"
// @Success  200 {object} cart.DTO
// @Failure  404 {object} httpx.HTTPError
// @Router   /cart/user/{user_id} [get]
func getUserCartHandler(carts cartAPI, users userAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := c.Param("user_id")
		// View provisions a cart, so only for accounts user-service knows
		ok, err := users.Exists(ctx, userID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		if !ok {
			httpx.Error(c, log, user.ErrNotFound)
			return
		}
		dto, err := carts.View(ctx, userID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// addCartItemHandler godoc
// @Summary  Add a product to the cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body cart.AddItemRequest true "item"
// @Success  200 {object} cart.DTO
// @Failure  400 {object} httpx.HTTPError
// @Router   /cart/items [post]
func addCartItemHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.AddItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "product_id and quantity are required")
			return
		}
		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		cartID, err := carts.AddItem(ctx, id.UserID, in.CartID, in.ProductID, in.Quantity)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := carts.ViewByID(ctx, cartID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// removeCartItemHandler godoc
// @Summary  Remove a quantity of a product; without quantity the line is dropped
// @Tags     cart
// @Produce  json
// @Security BearerAuth
// @Param    product_id path  string true  "product id"
// @Param    quantity   query int    false "units to remove"
// @Success  200 {object} cart.DTO
// @Failure  400 {object} httpx.HTTPError
// @Router   /cart/items/{product_id} [delete]
func removeCartItemHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty := cart.RemoveAll
		if raw, ok := c.GetQuery("quantity"); ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				httpx.BadRequest(c, "quantity must be an integer")
				return
			}
			qty = n
		}

		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		current, err := carts.GetOrCreate(ctx, id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		if err := carts.RemoveItem(ctx, current.ID, c.Param("product_id"), qty); err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := carts.ViewByID(ctx, current.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// clearCartHandler godoc
// @Summary  Clear the caller's cart
// @Tags     cart
// @Security BearerAuth
// @Success  204
// @Router   /cart [delete]
func clearCartHandler(carts cartAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		current, err := carts.GetOrCreate(ctx, id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		if err := carts.Clear(ctx, current.ID); err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
