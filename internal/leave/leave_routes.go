package leave

import (
	"github.com/BadrBouzakri/conges/internal/middleware"
	"github.com/BadrBouzakri/conges/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read_all"), handler.GetAll)
		requests.GET("/me", handler.GetMine)
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, "leave_request", "read_all"), handler.GetPending)
		requests.GET("/preview", handler.Preview)
		requests.GET("/calendar/:year/:month", handler.CalendarMonth)
		requests.GET("/:id", handler.GetByID)
		requests.POST("", middleware.Idempotency(rdb), handler.Create)
		requests.PUT("/:id", handler.Update)
		requests.DELETE("/:id", handler.Delete)
		// Approve/reject skip the route-level gate on purpose: the lifecycle
		// check reports a state conflict on already-decided requests before
		// looking at the caller's role, and a blanket 403 here would mask it.
		requests.POST("/:id/approve", handler.Approve)
		requests.POST("/:id/reject", handler.Reject)
	}
}
