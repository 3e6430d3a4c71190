package router

import (
	"github.com/TeamSorcerers/app-financeiro-backend/internal/config"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/handler"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and registers all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// public routes
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost, cfg.Upload.MaxSizeMB)
	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)

	imageHandler := handler.NewImageHandler(db)
	api.GET("/images/:id", imageHandler.GetImage)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", authHandler.Me)

	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost, cfg.Upload.MaxSizeMB)
	protected.PUT("/me", userHandler.UpdateProfile)
	protected.GET("/users/search", userHandler.Search)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	accountHandler := handler.NewAccountHandler(db)
	protected.POST("/accounts", accountHandler.Create)
	protected.GET("/accounts", accountHandler.List)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	cardHandler := handler.NewCardHandler(db)
	protected.POST("/cards", cardHandler.Create)
	protected.GET("/cards", cardHandler.List)
	protected.PUT("/cards/:id", cardHandler.Update)
	protected.DELETE("/cards/:id", cardHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	groupHandler := handler.NewGroupHandler(db, cfg.Upload.MaxSizeMB)
	protected.POST("/groups", groupHandler.Create)
	protected.GET("/groups", groupHandler.List)
	protected.GET("/groups/:id", groupHandler.Get)
	protected.PUT("/groups/:id", groupHandler.Update)
	protected.DELETE("/groups/:id", groupHandler.Delete)

	inviteHandler := handler.NewInviteHandler(db)
	protected.POST("/groups/:id/invite", inviteHandler.Create)
	protected.GET("/invites", inviteHandler.List)
	protected.POST("/invites/:id/accept", inviteHandler.Accept)
	protected.POST("/invites/:id/reject", inviteHandler.Reject)

	memberHandler := handler.NewMemberHandler(db)
	protected.POST("/groups/:id/members/:memberId/promote", memberHandler.Promote)
	protected.POST("/groups/:id/members/:memberId/demote", memberHandler.Demote)
	protected.DELETE("/groups/:id/members/:memberId", memberHandler.Remove)
	protected.POST("/groups/:id/leave", memberHandler.Leave)

	groupCategoryHandler := handler.NewGroupCategoryHandler(db)
	protected.PUT("/groups/:id/categories/:categoryId", groupCategoryHandler.Update)
	protected.DELETE("/groups/:id/categories/:categoryId", groupCategoryHandler.Delete)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.List)

	return r
}
