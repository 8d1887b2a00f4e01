package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero/cajaclinic/internal/api/controller"
	"github.com/lromero/cajaclinic/internal/api/middleware"
)

// RegisterRoutes wires every endpoint. enforceAdmin feeds the AdminOnly gate
// on the review-side endpoints; see middleware.AdminOnly for the relaxed
// default.
func RegisterRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	cutCtrl *controller.CutController,
	expenseCtrl *controller.ExpenseController,
	reportCtrl *controller.ReportController,
	enforceAdmin bool,
) {
	r.Use(middleware.Cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1/auth")
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/auth/password", authCtrl.ChangePassword)

		// intake: blind submission of a closing plus its expense lines
		protected.POST("/cuts", cutCtrl.Submit)
		protected.POST("/expenses", expenseCtrl.Create)

		// audit/review
		admin := protected.Group("")
		admin.Use(middleware.AdminOnly(enforceAdmin))
		{
			admin.GET("/cuts", cutCtrl.List)
			admin.POST("/cuts/review", cutCtrl.Review)
			admin.POST("/cuts/delete", cutCtrl.Delete)
			admin.GET("/expenses", expenseCtrl.List)
			admin.POST("/expenses/update", expenseCtrl.Update)
			admin.POST("/expenses/delete", expenseCtrl.Delete)
			admin.GET("/reports/summary", reportCtrl.Summary)
		}
	}
}
