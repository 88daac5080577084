package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/realtime"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/validation"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	JobUC          domain.JobUsecase
	ApplicationUC  domain.ApplicationUsecase
	SavedJobUC     domain.SavedJobUsecase
	MessagingUC    domain.MessagingUsecase
	NotificationUC domain.NotificationUsecase
	ProfileUC      domain.ProfileUsecase
	Hub            *realtime.Hub
	JWKSProvider   *auth.Provider
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	uploadLimiter := middleware.RateLimitMiddleware(
		middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", gin.H{
			"redis": redis.IsAvailable(),
		})
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMW := middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMW)

	// Older clients still call a few flat /api paths
	legacy := r.Group("/api")
	legacy.Use(authMW)

	{
		NewAuthHandler(protected, deps.AuthUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC, uploadLimiter)
		NewSavedJobHandler(protected, deps.SavedJobUC)
		NewMessagingHandler(protected, legacy, deps.MessagingUC)
		NewNotificationHandler(protected, legacy, deps.NotificationUC)
		NewProfileHandler(protected, legacy, deps.ProfileUC, uploadLimiter)
		NewRealtimeHandler(protected, deps.Hub)
	}

	return r
}
