package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/order"
)

// visibleOrder loads the order and hides it from anyone but its owner or an admin.
func visibleOrder(c *gin.Context, orders orderAPI, orderID string) (*order.DTO, error) {
	id, _ := auth.FromContext(c)
	dto, err := orders.Get(c.Request.Context(), orderID)
	if err != nil {
		return nil, err
	}
	if dto.UserID != id.UserID && !id.IsAdmin() {
		return nil, order.ErrOrderNotFound
	}
	return dto, nil
}

// checkoutHandler godoc
// @Summary  Place an order from the caller's cart
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body order.CheckoutRequest true "shipping data"
// @Success  201 {object} order.DTO
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /orders [post]
func checkoutHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CheckoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid shipping data")
			return
		}
		id, _ := auth.FromContext(c)
		in.UserID = id.UserID

		ctx := c.Request.Context()
		o, _, err := orders.CreateFromCart(ctx, in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := orders.Get(ctx, o.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, dto)
	}
}

// listOrdersHandler godoc
// @Summary  All orders, newest first
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    limit  query int false "page size"
// @Param    offset query int false "offset"
// @Success  200 {array} order.DTO
// @Router   /orders [get]
func listOrdersHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := httpx.Page(c)
		out, err := orders.ListAll(c.Request.Context(), limit, offset)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// myOrdersHandler godoc
// @Summary  Caller's orders, newest first
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} order.DTO
// @Router   /orders/mine [get]
func myOrdersHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		limit, offset := httpx.Page(c)
		out, err := orders.ListByUser(c.Request.Context(), id.UserID, limit, offset)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// userOrdersHandler godoc
// @Summary  Orders of a user
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    user_id path string true "user id"
// @Success  200 {array} order.DTO
// @Router   /orders/user/{user_id} [get]
func userOrdersHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := httpx.Page(c)
		out, err := orders.ListByUser(c.Request.Context(), c.Param("user_id"), limit, offset)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getOrderHandler godoc
// @Summary  Order with its lines
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "order id"
// @Success  200 {object} order.DTO
// @Failure  404 {object} httpx.HTTPError
// @Router   /orders/{id} [get]
func getOrderHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := visibleOrder(c, orders, c.Param("id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// orderTotalHandler godoc
// @Summary  Stored total of an order
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "order id"
// @Success  200 {object} map[string]string
// @Router   /orders/{id}/total [get]
func orderTotalHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		if _, err := visibleOrder(c, orders, orderID); err != nil {
			httpx.Error(c, log, err)
			return
		}
		total, err := orders.Total(c.Request.Context(), orderID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": orderID, "total": total})
	}
}

// updateStatusHandler godoc
// @Summary  Move an order through its status machine
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string             true "order id"
// @Param    body body order.StatusUpdate true "new status"
// @Success  200 {object} order.DTO
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /orders/{id}/status [put]
func updateStatusHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.StatusUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "status is required")
			return
		}
		ctx := c.Request.Context()
		o, err := orders.UpdateStatus(ctx, c.Param("id"), in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := orders.Get(ctx, o.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// cancelOrderHandler godoc
// @Summary  Cancel an order; owners and admins only
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "order id"
// @Success  200 {object} order.DTO
// @Failure  404 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /orders/{id}/cancel [put]
func cancelOrderHandler(orders orderAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		o, err := orders.Cancel(ctx, c.Param("id"), id)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := orders.Get(ctx, o.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}
