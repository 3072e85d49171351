package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return 0
	}
	return sess.UserID
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		DOB:      u.FormatDOB(),
		Points:   u.Points,
		Role:     string(u.Role),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		ItemName:  o.ItemName,
		Price:     o.Price,
		Qty:       o.Qty,
		CreatedAt: o.CreatedAt,
	}
}
