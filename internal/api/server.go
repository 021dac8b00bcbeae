package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/t-hub/tournament-api/docs"
	v1 "github.com/t-hub/tournament-api/internal/api/handler/v1"
	"github.com/t-hub/tournament-api/internal/api/middleware"
	"github.com/t-hub/tournament-api/internal/config"
	"github.com/t-hub/tournament-api/internal/events"
	"github.com/t-hub/tournament-api/internal/repository"
	"github.com/t-hub/tournament-api/internal/repository/dao"
	"github.com/t-hub/tournament-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, publisher events.Publisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	tournamentHandler := s.initTournamentHandler(db, publisher)
	s.MountHandlers(authHandler, userHandler, tournamentHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTournamentHandler(db *gorm.DB, publisher events.Publisher) *v1.TournamentHandler {
	tournamentRepo := repository.NewTournamentRepository(dao.NewTournamentDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))

	svc := service.NewTournamentService(tournamentRepo, registrationRepo, publisher)
	regSvc := service.NewRegistrationService(registrationRepo, tournamentRepo, publisher)
	uSvc := service.NewUserService(userRepo)

	handler := v1.NewTournamentHandler(svc, regSvc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, tournamentHandler *v1.TournamentHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	tournaments := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		tournaments.GET("/tournaments", tournamentHandler.HandleListTournaments)
		tournaments.GET("/tournaments/mine", tournamentHandler.HandleListMyTournaments)
		tournaments.POST("/tournaments", tournamentHandler.HandleCreateTournament)
		tournaments.GET("/tournaments/:tournamentID", tournamentHandler.HandleGetTournament)
		tournaments.PUT("/tournaments/:tournamentID", tournamentHandler.HandleUpdateTournament)
		tournaments.PATCH("/tournaments/:tournamentID/status", tournamentHandler.HandleUpdateStatus)
		tournaments.POST("/tournaments/:tournamentID/register", tournamentHandler.HandleRegister)
		tournaments.DELETE("/tournaments/:tournamentID/register", tournamentHandler.HandleWithdraw)
		tournaments.GET("/tournaments/:tournamentID/participants", tournamentHandler.HandleListParticipants)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Tournament API"
	docs.SwaggerInfo.Description = "Capacity-bounded tournament registration API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
