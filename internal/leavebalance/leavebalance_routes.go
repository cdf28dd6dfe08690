package leavebalance

import (
	"github.com/BadrBouzakri/conges/internal/middleware"
	"github.com/BadrBouzakri/conges/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		balances.GET("/me", handler.GetMine)
		balances.GET("/user/:id", middleware.RBACAuthorize(rbacService, "leave_balance", "read_all"), handler.GetByUser)
		balances.POST("", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.Open)
		balances.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.Adjust)
	}
}
