package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type Router struct {
	userHandler         *UserHandler
	profileHandler      *ProfileHandler
	authHandler         *AuthHandler
	clientHandler       *ClientHandler
	leadHandler         *LeadHandler
	taskHandler         *TaskHandler
	noteHandler         *NoteHandler
	activityHandler     *ActivityHandler
	notificationHandler *NotificationHandler
	dashboardHandler    *DashboardHandler
	aiHandler           *AIHandler
	userUsecase         usecasecontract.IUserUseCase
	uploadDir           string
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	clientUsecase usecasecontract.IClientUseCase,
	leadUsecase usecasecontract.ILeadUseCase,
	taskUsecase usecasecontract.ITaskUseCase,
	noteUsecase usecasecontract.INoteUseCase,
	activityUsecase usecasecontract.IActivityUseCase,
	notificationUsecase usecasecontract.INotificationUseCase,
	dashboardUsecase usecasecontract.IDashboardUseCase,
	aiUsecase usecasecontract.IAIUseCase,
	config usecasecontract.IConfigProvider,
) *Router {
	return &Router{
		userHandler:         NewUserHandler(userUsecase),
		profileHandler:      NewProfileHandler(userUsecase, config),
		authHandler:         NewAuthHandler(userUsecase, config.GetAppBaseURL()),
		clientHandler:       NewClientHandler(clientUsecase),
		leadHandler:         NewLeadHandler(leadUsecase),
		taskHandler:         NewTaskHandler(taskUsecase),
		noteHandler:         NewNoteHandler(noteUsecase),
		activityHandler:     NewActivityHandler(activityUsecase),
		notificationHandler: NewNotificationHandler(notificationUsecase),
		dashboardHandler:    NewDashboardHandler(dashboardUsecase),
		aiHandler:           NewAIHandler(aiUsecase),
		userUsecase:         userUsecase,
		uploadDir:           config.GetUploadDir(),
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// uploaded avatars are served straight off disk
	router.Static("/uploads", r.uploadDir)

	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/forgot-password", r.userHandler.ForgotPassword)
		auth.POST("/reset-password", r.userHandler.ResetPassword)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.userUsecase))
	{
		// Current user routes
		protected.GET("/me", r.profileHandler.GetCurrentUser)
		protected.PUT("/me", r.profileHandler.UpdateProfile)
		protected.PUT("/me/password", r.profileHandler.ChangePassword)
		protected.POST("/me/avatar", r.profileHandler.UploadAvatar)

		// User management (admin only)
		users := protected.Group("/users")
		users.Use(middleware.AdminOnly())
		{
			users.GET("", r.userHandler.ListUsers)
			users.POST("", r.userHandler.AdminCreateUser)
			users.GET("/:id", r.userHandler.GetUser)
			users.PUT("/:id", r.userHandler.AdminUpdateUser)
			users.DELETE("/:id", r.userHandler.DeleteUser)
		}

		// Client routes
		protected.GET("/clients", r.clientHandler.ListClients)
		protected.POST("/clients", r.clientHandler.CreateClient)
		protected.GET("/clients/:id", r.clientHandler.GetClient)
		protected.PUT("/clients/:id", r.clientHandler.UpdateClient)
		protected.DELETE("/clients/:id", r.clientHandler.DeleteClient)

		// Lead routes
		protected.GET("/leads", r.leadHandler.ListLeads)
		protected.POST("/leads", r.leadHandler.CreateLead)
		protected.GET("/leads/:id", r.leadHandler.GetLead)
		protected.PUT("/leads/:id", r.leadHandler.UpdateLead)
		protected.DELETE("/leads/:id", r.leadHandler.DeleteLead)

		// Task routes
		protected.GET("/tasks", r.taskHandler.ListTasks)
		protected.POST("/tasks", r.taskHandler.CreateTask)
		protected.GET("/tasks/:id", r.taskHandler.GetTask)
		protected.PUT("/tasks/:id", r.taskHandler.UpdateTask)
		protected.DELETE("/tasks/:id", r.taskHandler.DeleteTask)

		// Note routes
		protected.GET("/notes", r.noteHandler.ListNotes)
		protected.POST("/notes", r.noteHandler.CreateNote)
		protected.GET("/notes/:id", r.noteHandler.GetNote)
		protected.PUT("/notes/:id", r.noteHandler.UpdateNote)
		protected.DELETE("/notes/:id", r.noteHandler.DeleteNote)
		protected.POST("/notes/:id/pin", r.noteHandler.TogglePin)

		// Activity feed routes
		protected.GET("/activities", r.activityHandler.ListActivities)
		protected.POST("/activities", r.activityHandler.PostActivity)
		protected.GET("/activities/:id", r.activityHandler.GetActivity)
		protected.DELETE("/activities/:id", r.activityHandler.DeleteActivity)
		protected.POST("/activities/:id/like", r.activityHandler.ToggleLike)
		protected.POST("/activities/:id/pin", r.activityHandler.TogglePin)
		protected.POST("/activities/:id/comments", r.activityHandler.AddComment)
		protected.DELETE("/activities/:id/comments/:commentID", r.activityHandler.DeleteComment)

		// Notification routes
		protected.GET("/notifications", r.notificationHandler.ListNotifications)
		protected.GET("/notifications/unread-count", r.notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", r.notificationHandler.MarkRead)
		protected.PUT("/notifications/read-all", r.notificationHandler.MarkAllRead)
		protected.DELETE("/notifications/:id", r.notificationHandler.DeleteNotification)

		// Dashboard
		protected.GET("/dashboard/stats", r.dashboardHandler.GetStats)

		// AI summarization
		protected.POST("/ai-summary", r.aiHandler.HandleSummarizeRecord)
	}

	// Logout accepts the refresh token from the request body and invalidates the session
	v1.POST("/logout", r.userHandler.Logout)
}
