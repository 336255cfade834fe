package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/handlers"
	"github.com/impostor-dev/impostor/internal/middleware"
	"github.com/impostor-dev/impostor/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.SetHTMLTemplate(handlers.AdminTemplates())
	r.Static("/storage/avatars", config.Active.AvatarDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/forgot-password", handlers.ForgotPassword)
		api.POST("/reset-password", handlers.ResetPassword)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/logout", handlers.Logout)
			authed.GET("/user", handlers.Me)
			authed.PUT("/user", handlers.UpdateProfile)
			authed.POST("/user/avatar", handlers.UploadAvatar)

			authed.GET("/categories", handlers.ListCategories)
			authed.POST("/categories", handlers.CreateCategory)
			authed.GET("/categories/:id", handlers.ShowCategory)
			authed.PUT("/categories/:id", handlers.UpdateCategory)
			authed.DELETE("/categories/:id", handlers.DeleteCategory)

			authed.GET("/categories/:id/words", handlers.ListCategoryWords)
			authed.POST("/categories/:id/words", handlers.CreateWord)
			authed.DELETE("/words/:id", handlers.DeleteWord)

			authed.GET("/games", handlers.ListGames)
			authed.POST("/games", handlers.CreateGame)
			authed.GET("/games/:id", handlers.ShowGame)

			authed.GET("/games/:id/rounds", handlers.ListRounds)
			authed.POST("/games/:id/rounds", handlers.CreateRound)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.PUT("/users/:id/role", handlers.AdminUpdateUserRole)
			admin.PUT("/users/:id/toggle-active", handlers.AdminToggleUserStatus)
			admin.DELETE("/users/:id", handlers.AdminDeleteUser)

			admin.POST("/categories", handlers.AdminCreateCategory)
			admin.PUT("/categories/:id", handlers.AdminUpdateCategory)
			admin.DELETE("/categories/:id", handlers.AdminDeleteCategory)
			admin.PUT("/categories/:id/toggle-default", handlers.AdminToggleDefaultCategory)
		}
	}

	// Server-rendered admin panel.
	panel := r.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		panel.GET("", handlers.AdminDashboard)
		panel.GET("/users", handlers.AdminUsersPage)
	}

	return r
}
