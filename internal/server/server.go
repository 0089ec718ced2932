package server

import (
	"log"
	"strings"
	"time"

	"cslab.kr/securityhub/internal/config"
	"cslab.kr/securityhub/internal/guard"
	"cslab.kr/securityhub/internal/middleware"
	"cslab.kr/securityhub/pkg/storage"

	commentHttp "cslab.kr/securityhub/internal/modules/comment/delivery/http"
	commentRepo "cslab.kr/securityhub/internal/modules/comment/repository"
	commentService "cslab.kr/securityhub/internal/modules/comment/service"

	expertHttp "cslab.kr/securityhub/internal/modules/expert/delivery/http"
	expertRepo "cslab.kr/securityhub/internal/modules/expert/repository"
	expertService "cslab.kr/securityhub/internal/modules/expert/service"

	messageHttp "cslab.kr/securityhub/internal/modules/message/delivery/http"
	messageRepo "cslab.kr/securityhub/internal/modules/message/repository"
	messageService "cslab.kr/securityhub/internal/modules/message/service"

	newsHttp "cslab.kr/securityhub/internal/modules/news/delivery/http"
	newsRepo "cslab.kr/securityhub/internal/modules/news/repository"
	newsService "cslab.kr/securityhub/internal/modules/news/service"

	notifHttp "cslab.kr/securityhub/internal/modules/notification/delivery/http"
	notifRepo "cslab.kr/securityhub/internal/modules/notification/repository"
	notifService "cslab.kr/securityhub/internal/modules/notification/service"

	postHttp "cslab.kr/securityhub/internal/modules/post/delivery/http"
	postRepo "cslab.kr/securityhub/internal/modules/post/repository"
	postService "cslab.kr/securityhub/internal/modules/post/service"

	scanHttp "cslab.kr/securityhub/internal/modules/scan/delivery/http"
	scanRepo "cslab.kr/securityhub/internal/modules/scan/repository"
	scanService "cslab.kr/securityhub/internal/modules/scan/service"

	searchHttp "cslab.kr/securityhub/internal/modules/search/delivery/http"
	searchRepo "cslab.kr/securityhub/internal/modules/search/repository"
	searchService "cslab.kr/securityhub/internal/modules/search/service"

	settingsHttp "cslab.kr/securityhub/internal/modules/settings/delivery/http"
	settingsRepo "cslab.kr/securityhub/internal/modules/settings/repository"
	settingsService "cslab.kr/securityhub/internal/modules/settings/service"

	userHttp "cslab.kr/securityhub/internal/modules/user/delivery/http"
	userRepo "cslab.kr/securityhub/internal/modules/user/repository"
	userService "cslab.kr/securityhub/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	demoAccounts := guard.NewDemoAccounts(cfg.DemoAccounts)

	fileStorage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	searchSvc := searchService.NewSearchService(meiliClient, searchRepo.NewSearchRepository(db))
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	authSvc := userService.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	profileSvc := userService.NewProfileService(users, fileStorage, demoAccounts)
	profileHandler := userHttp.NewProfileHandler(profileSvc)

	notificationSvc := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	posts := postRepo.NewPostRepository(db)
	scheduler := postService.NewCommentScheduler(cfg.CommentSchedulerURL)
	postSvc := postService.NewPostService(posts, users, redisClient, cfg.RateLimitPost, scheduler, searchSvc, demoAccounts)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentSvc := commentService.NewCommentService(commentRepo.NewCommentRepository(db), posts, users, notificationSvc)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	newsSvc := newsService.NewNewsService(newsRepo.NewNewsRepository(db), users, notificationSvc)
	newsHandler := newsHttp.NewNewsHandler(newsSvc)

	scanSvc := scanService.NewScanService(scanRepo.NewScanRepository(db), users)
	scanHandler := scanHttp.NewScanHandler(scanSvc)

	expertSvc := expertService.NewExpertService(expertRepo.NewExpertRepository(db))
	expertHandler := expertHttp.NewExpertHandler(expertSvc)

	settingsSvc := settingsService.NewSettingsService(settingsRepo.NewSettingsRepository(db))
	settingsHandler := settingsHttp.NewSettingsHandler(settingsSvc)

	messageSvc := messageService.NewMessageService(messageRepo.NewMessageRepository(db), users, notificationSvc)
	messageHandler := messageHttp.NewMessageHandler(messageSvc, fileStorage)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	if cfg.StorageDriver == "local" {
		router.Static("/static", cfg.StorageDir)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Public routes: community/news reads and email-identified mutations.
	api.GET("/community/posts", postHandler.List)
	api.POST("/community/posts", postHandler.Create)
	api.GET("/community/posts/:id", postHandler.Detail)
	api.PUT("/community/posts/:id", postHandler.Update)
	api.DELETE("/community/posts/:id", postHandler.Delete)
	api.GET("/posts/popular", postHandler.Popular)
	api.GET("/posts/:id", postHandler.Detail)

	api.POST("/community/comments", commentHandler.Create)
	api.PUT("/community/comments/:id", commentHandler.Update)
	api.DELETE("/community/comments/:id", commentHandler.Delete)

	api.GET("/news", newsHandler.List)
	api.GET("/news/:id", newsHandler.Detail)
	api.PUT("/news/:id", newsHandler.Update)
	api.POST("/news/comments", newsHandler.CreateComment)

	api.GET("/search", searchHandler.Search)
	api.GET("/experts", expertHandler.List)
	api.GET("/user/scans", scanHandler.UserScans)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/news", newsHandler.Create)

		user := protected.Group("/user")
		{
			user.GET("/profile", profileHandler.GetProfile)
			user.PUT("/profile", profileHandler.UpdateProfile)
			user.PUT("/password", profileHandler.ChangePassword)
			user.DELETE("/account", profileHandler.DeleteAccount)
			user.POST("/profile-image", profileHandler.UploadProfileImage)
			user.DELETE("/profile-image", profileHandler.DeleteProfileImage)

			user.GET("/scan-history", scanHandler.History)
			user.GET("/scan-history/:id", scanHandler.HistoryDetail)

			user.GET("/settings", settingsHandler.GetSettings)
			user.PUT("/settings", settingsHandler.UpdateSettings)
			user.GET("/statistics", settingsHandler.GetStatistics)
			user.GET("/credits", settingsHandler.GetCredits)
		}

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PATCH("/notifications/:id", notificationHandler.MarkAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		messages := protected.Group("/messages")
		{
			messages.GET("/threads", messageHandler.ListThreads)
			messages.POST("/threads", messageHandler.CreateThread)
			messages.POST("/upload", messageHandler.Upload)
			messages.GET("/:threadId", messageHandler.Messages)
			messages.POST("/:threadId", messageHandler.Send)
		}

		expert := protected.Group("/expert")
		expert.Use(authMiddleware.RequireExpert())
		{
			expert.GET("/scans", scanHandler.ExpertFeed)
			expert.GET("/dashboard/stats", scanHandler.DashboardStats)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func newStorage(cfg *config.Config) (storage.ImageStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryStorage()
	}
	return storage.NewLocalStorage(cfg.StorageDir, cfg.StorageBaseURL)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
