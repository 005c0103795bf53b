package router

import (
	"github.com/gin-gonic/gin"
	"github.com/peaceseal/peaceseal-backend/config"
	"github.com/peaceseal/peaceseal-backend/internal/app/controller"
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"github.com/peaceseal/peaceseal-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	companyController    *controller.CompanyController
	reviewController     *controller.ReviewController
	evaluationController *controller.EvaluationController
	directoryController  *controller.DirectoryController
	adminController      *controller.AdminController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	companyController *controller.CompanyController,
	reviewController *controller.ReviewController,
	evaluationController *controller.EvaluationController,
	directoryController *controller.DirectoryController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		companyController:    companyController,
		reviewController:     reviewController,
		evaluationController: evaluationController,
		directoryController:  directoryController,
		adminController:      adminController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Peace Seal API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		directory := v1.Group("/directory")
		{
			directory.GET("", r.directoryController.List)
			directory.GET("/:slug", r.directoryController.Profile)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("/tiers", r.companyController.PaymentTiers)
		}

		companies := v1.Group("/companies")
		{
			companies.GET("/:id/reviews",
				r.authMiddleware.OptionalAuthenticate(),
				r.reviewController.List,
			)
			companies.POST("/:id/reviews", r.reviewController.Submit)

			companies.POST("",
				r.authMiddleware.Authenticate(),
				r.companyController.Create,
			)
			companies.GET("/:id",
				r.authMiddleware.Authenticate(),
				r.companyController.Get,
			)
			companies.GET("/:id/history",
				r.authMiddleware.Authenticate(),
				r.companyController.History,
			)

			companies.PUT("/:id/questionnaire",
				r.authMiddleware.Authenticate(),
				r.companyController.SaveQuestionnaire,
			)
			companies.GET("/:id/questionnaire",
				r.authMiddleware.Authenticate(),
				r.companyController.GetQuestionnaire,
			)
			companies.POST("/:id/questionnaire/complete",
				r.authMiddleware.Authenticate(),
				r.companyController.CompleteQuestionnaire,
			)
			companies.GET("/:id/assessment",
				r.authMiddleware.Authenticate(),
				r.companyController.Assessment,
			)
			companies.POST("/:id/evidence",
				r.authMiddleware.Authenticate(),
				r.uploadController.PresignEvidence,
			)

			companies.POST("/:id/payment",
				r.authMiddleware.Authenticate(),
				r.companyController.ConfirmPayment,
			)
			companies.POST("/:id/quote",
				r.authMiddleware.Authenticate(),
				r.companyController.RequestQuote,
			)

			companies.PUT("/:id/status",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.companyController.Transition,
			)
			companies.PUT("/:id/score",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.companyController.SetScore,
			)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("/confirm", r.reviewController.Confirm)
			reviews.GET("/questions/:role", r.reviewController.Questions)

			reviews.PUT("/:id/evaluation",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.evaluationController.Evaluate,
			)
		}

		evaluations := v1.Group("/evaluations")
		evaluations.Use(r.authMiddleware.Authenticate())
		{
			evaluations.GET("/:id",
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.evaluationController.Get,
			)
			evaluations.POST("/:id/response", r.evaluationController.SubmitResponse)
			evaluations.POST("/:id/approve",
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.evaluationController.ApproveResponse,
			)
			evaluations.POST("/:id/reject",
				r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
				r.evaluationController.RejectResponse,
			)
		}

		advisor := v1.Group("/advisor")
		advisor.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdvisor, model.RoleAdmin, model.RoleSuperAdmin),
		)
		{
			advisor.GET("/companies", r.evaluationController.AssignedCompanies)
		}

		admin := v1.Group("/admin")
		admin.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin),
		)
		{
			admin.GET("/companies", r.adminController.ListCompanies)
			admin.GET("/companies/:id/issues", r.adminController.ListIssues)
			admin.GET("/companies/export", r.adminController.ExportCompanies)
			admin.POST("/companies/:id/seal/reactivate", r.companyController.ReactivateSeal)
			admin.POST("/reviews/:id/verify", r.reviewController.AdminVerify)
			admin.POST("/reviews/:id/dismiss", r.reviewController.AdminDismiss)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
