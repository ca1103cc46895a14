package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/config"
	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/metrics"
	"github.com/example/carhub/internal/middleware"
)

// SetupRoutes installs the auth middleware and registers all routes.
// Global middleware (Recovery, RequestID, Logging, Metrics, CORS) is expected
// on the router already. m may be nil, in which case /metrics is not served.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	verifier middleware.TokenVerifier,
	m *metrics.Metrics,
	userService core.UserService,
	interestService core.InterestService,
	testDriveService core.TestDriveService,
) {
	registerValidators()

	authMW := middleware.NewAuthMiddleware(verifier, appConfig.PublicPathList(), logger, m)
	router.Use(authMW.VerifyToken())

	authHandler := NewAuthHandler(logger)
	userHandler := NewUserHandler(userService, logger)
	interestHandler := NewInterestHandler(interestService, logger)
	testDriveHandler := NewTestDriveHandler(testDriveService, logger)

	apiV1 := router.Group("/v1/api")
	{
		apiV1.POST("/auth/verify", authHandler.VerifyToken)

		userGroup := apiV1.Group("/user")
		{
			userGroup.GET("/me", userHandler.GetCurrentUserProfile)
			userGroup.PUT("/me", userHandler.UpdateCurrentUserProfile)
		}

		interestsGroup := apiV1.Group("/interests")
		{
			interestsGroup.POST("", interestHandler.CreateInterest)
			interestsGroup.GET("", interestHandler.ListInterests)
		}

		testDrivesGroup := apiV1.Group("/test-drives")
		{
			testDrivesGroup.POST("", testDriveHandler.CreateTestDrive)
			testDrivesGroup.GET("", testDriveHandler.ListTestDrives)
		}
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "UP"})
	}
	router.GET("/health", health)
	router.GET("/actuator/health", health)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	logger.Info("API routes configured under /v1/api",
		zap.Strings("publicPaths", appConfig.PublicPathList()),
	)
}
