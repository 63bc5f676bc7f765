package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/jurandifr/AcheiPet/imageproc"
	"github.com/jurandifr/AcheiPet/ingest"
	"github.com/jurandifr/AcheiPet/logmodule"
	"github.com/jurandifr/AcheiPet/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.PetCore

	// Report ingestion
	pipeline ingest.Ingestor

	// Processed photo storage
	images *imageproc.Processor

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey
}

// NewServer new instance of server
func NewServer(
	petStore store.PetCore,
	pipeline ingest.Ingestor,
	images *imageproc.Processor,
	jwtKey *rsa.PrivateKey) *Server {
	return &Server{
		store:         petStore,
		pipeline:      pipeline,
		images:        images,
		jwtPrivateKey: jwtKey,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute.POST("/login", s.login)
	apiRoute.GET("/logout", s.logout)

	reportRoute := apiRoute.Group("/reports")
	{
		reportRoute.POST("", s.optionalAuthMiddleware(), s.createReport)
		reportRoute.GET("", s.listReports)
		reportRoute.GET("/my", s.authMiddleware(), s.myReports)
		reportRoute.GET("/:id", s.getReport)
	}

	apiRoute.GET("/images/:filename", s.getImage)

	authRoute := apiRoute.Group("/auth")
	authRoute.Use(s.authMiddleware())
	{
		authRoute.GET("/user", s.currentUser)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		log.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	c.JSON(code, obj)
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
