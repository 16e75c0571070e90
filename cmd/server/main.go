package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedback/internal/api"
	"feedback/internal/config"
	"feedback/internal/model"
	"feedback/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if repo != nil {
		if err := model.SeedDefaultRoles(context.Background(), repo); err != nil {
			logrus.WithError(err).Error("failed to seed default roles")
			return
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	// role names are public so signup forms can render them
	apiGroup.GET("/roles", httpHandler.ListRoles)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())

	profileGroup := protected.Group("/profile")
	profileGroup.GET("", httpHandler.GetProfile)
	profileGroup.PUT("", httpHandler.UpdateProfile)
	profileGroup.POST("/picture", httpHandler.UploadProfilePicture)

	superAdmin := protected.Group("")
	superAdmin.Use(httpHandler.RequireSuperAdmin())
	superAdmin.GET("/users", httpHandler.ListUsers)
	superAdmin.POST("/users", httpHandler.CreateUser)
	superAdmin.POST("/roles", httpHandler.CreateRole)
	superAdmin.PUT("/roles/:id", httpHandler.UpdateRole)
	superAdmin.DELETE("/roles/:id", httpHandler.DeleteRole)

	admin := protected.Group("")
	admin.Use(httpHandler.RequireAdminOrSuperAdmin())
	admin.GET("/question-types", httpHandler.ListQuestionTypes)
	admin.POST("/question-types", httpHandler.CreateQuestionType)
	admin.PUT("/question-types/:id", httpHandler.UpdateQuestionType)
	admin.DELETE("/question-types/:id", httpHandler.DeleteQuestionType)
	admin.GET("/forms", httpHandler.ListForms)
	admin.POST("/forms", httpHandler.CreateForm)
	admin.PUT("/forms/:id", httpHandler.UpdateForm)
	admin.DELETE("/forms/:id", httpHandler.DeleteForm)
	admin.GET("/questions", httpHandler.ListQuestions)
	admin.POST("/questions", httpHandler.CreateQuestion)
	admin.PUT("/questions/:id", httpHandler.UpdateQuestion)
	admin.DELETE("/questions/:id", httpHandler.DeleteQuestion)
	admin.GET("/options", httpHandler.ListOptions)
	admin.POST("/options", httpHandler.CreateOption)
	admin.PUT("/options/:id", httpHandler.UpdateOption)
	admin.DELETE("/options/:id", httpHandler.DeleteOption)
	admin.GET("/answers", httpHandler.ListAnswers)

	endUser := protected.Group("")
	endUser.Use(httpHandler.RequireEndUser())
	endUser.POST("/answers", httpHandler.SubmitAnswer)
	endUser.GET("/answers/mine", httpHandler.ListMyAnswers)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed to start")
	}
}

// CORSMiddleware handles cross origin requests and preflight.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
