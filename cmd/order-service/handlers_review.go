package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/review"
)

// productReviewsHandler godoc
// @Summary  Reviews of a product, newest first
// @Tags     reviews
// @Produce  json
// @Param    product_id path string true "product id"
// @Success  200 {array} review.DTO
// @Router   /reviews/product/{product_id} [get]
func productReviewsHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := reviews.ListByProduct(c.Request.Context(), c.Param("product_id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// reviewSummaryHandler godoc
// @Summary  Average rating and review count of a product
// @Tags     reviews
// @Produce  json
// @Param    product_id path string true "product id"
// @Success  200 {object} review.Summary
// @Router   /reviews/product/{product_id}/summary [get]
func reviewSummaryHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := reviews.Summary(c.Request.Context(), c.Param("product_id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

// userReviewsHandler godoc
// @Summary  Reviews written by a user
// @Tags     reviews
// @Produce  json
// @Param    user_id path string true "user id"
// @Success  200 {array} review.DTO
// @Router   /reviews/user/{user_id} [get]
func userReviewsHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := reviews.ListByUser(c.Request.Context(), c.Param("user_id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// myReviewsHandler godoc
// @Summary  Caller's reviews
// @Tags     reviews
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} review.DTO
// @Router   /reviews/mine [get]
func myReviewsHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		out, err := reviews.ListByUser(c.Request.Context(), id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getReviewHandler godoc
// @Summary  Review by id
// @Tags     reviews
// @Produce  json
// @Param    id path string true "review id"
// @Success  200 {object} review.DTO
// @Failure  404 {object} httpx.HTTPError
// @Router   /reviews/{id} [get]
func getReviewHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := reviews.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// createReviewHandler godoc
// @Summary  Review a product; verified_purchase is set from the caller's orders
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body review.CreateRequest true "review"
// @Success  201 {object} review.DTO
// @Failure  400 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /reviews [post]
func createReviewHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.CreateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "product_id and a rating between 1 and 5 are required")
			return
		}
		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		rv, err := reviews.Create(ctx, id.UserID, in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := reviews.Get(ctx, rv.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, dto)
	}
}

// updateReviewHandler godoc
// @Summary  Edit a review; authors only
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string               true "review id"
// @Param    body body review.UpdateRequest true "changes"
// @Success  200 {object} review.DTO
// @Failure  403 {object} httpx.HTTPError
// @Router   /reviews/{id} [put]
func updateReviewHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in review.UpdateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "rating between 1 and 5 is required")
			return
		}
		id, _ := auth.FromContext(c)
		ctx := c.Request.Context()
		rv, err := reviews.Update(ctx, id, c.Param("id"), in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		dto, err := reviews.Get(ctx, rv.ID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// deleteReviewHandler godoc
// @Summary  Delete a review; authors and admins
// @Tags     reviews
// @Security BearerAuth
// @Param    id path string true "review id"
// @Success  204
// @Failure  403 {object} httpx.HTTPError
// @Router   /reviews/{id} [delete]
func deleteReviewHandler(reviews reviewAPI, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		if err := reviews.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
