package main

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-planner/api"
	api_i "github.com/beka-birhanu/vinom-planner/api/i"
	"github.com/beka-birhanu/vinom-planner/api/identity"
	plannerapi "github.com/beka-birhanu/vinom-planner/api/planner"
	"github.com/beka-birhanu/vinom-planner/config"
	"github.com/beka-birhanu/vinom-planner/infrastruture/cache"
	"github.com/beka-birhanu/vinom-planner/infrastruture/repo"
	"github.com/beka-birhanu/vinom-planner/infrastruture/token"
	"github.com/beka-birhanu/vinom-planner/metrics"
	"github.com/beka-birhanu/vinom-planner/service"
	"github.com/beka-birhanu/vinom-planner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planning API over HTTP",
	RunE:  runServe,
}

// server holds the dependencies of the serve command.
type server struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
	planRepo    i.PlanRepo
	planCache   i.PlanCache
	recorder    i.SolveRecorder
	planner     i.Planner
	tokenizer   i.Tokenizer
	router      *api.Router
}

func (s *server) initRepo(ctx context.Context) error {
	if cfg.DBURI == "" {
		s.planRepo = repo.NewMemoryPlanRepo()
		appLogger.Warn("DB_URI not set, plans are kept in memory")
		return nil
	}

	var err error
	s.mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.DBURI))
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err = s.mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	appLogger.Info("Connected to MongoDB")

	s.planRepo = repo.NewPlanRepo(s.mongoClient, cfg.DBName, "plans")
	appLogger.Info("Plan repository initialized")
	return nil
}

func (s *server) initCache(ctx context.Context) error {
	if cfg.RedisAddr == "" {
		appLogger.Warn("REDIS_ADDR not set, plans are not cached")
		return nil
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	var err error
	s.planCache, err = cache.NewRedisPlanCache(s.redisClient, cfg.CacheTTLSeconds)
	if err != nil {
		return fmt.Errorf("creating plan cache: %w", err)
	}
	appLogger.Info("Plan cache initialized")
	return nil
}

func (s *server) initPlanner() error {
	plannerLogger, err := newLogger("PLANNER", config.ColorCyan)
	if err != nil {
		return err
	}

	opts := service.PlannerOptions{
		Repo:             s.planRepo,
		Recorder:         s.recorder,
		Logger:           plannerLogger,
		MaxMazeSide:      cfg.MaxMazeSide,
		Discount:         cfg.DiscountFactor,
		MaxError:         cfg.MaxError,
		EvaluationRounds: cfg.NumPolicyEvaluation,
	}
	if s.planCache != nil {
		opts.Cache = s.planCache
	}

	s.planner, err = service.NewPlanningService(opts)
	if err != nil {
		return fmt.Errorf("creating planning service: %w", err)
	}
	appLogger.Info("Planning service initialized")
	return nil
}

func (s *server) initRouter() error {
	apiLogger, err := newLogger("API", config.ColorBlue)
	if err != nil {
		return err
	}

	controller, err := plannerapi.NewPlannerController(s.planner, apiLogger)
	if err != nil {
		return fmt.Errorf("creating planner controller: %w", err)
	}

	var authorization gin.HandlerFunc
	if cfg.JWTSecret != "" {
		s.tokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
		authorization = identity.Authorize(s.tokenizer)
		appLogger.Info("JWT Tokenizer initialized")
	} else {
		appLogger.Warn("JWT_SECRET not set, plan routes are not protected")
	}

	s.router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: authorization,
		MetricsHandler:          metrics.Handler(prometheus.DefaultGatherer),
	})
	appLogger.Info("Router initialized")
	return nil
}

func (s *server) close(ctx context.Context) {
	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(ctx)
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	s := &server{recorder: metrics.NewSolve(prometheus.DefaultRegisterer)}
	defer s.close(context.Background())

	if err := s.initRepo(ctx); err != nil {
		return err
	}
	if err := s.initCache(ctx); err != nil {
		return err
	}
	if err := s.initPlanner(); err != nil {
		return err
	}
	if err := s.initRouter(); err != nil {
		return err
	}

	appLogger.Info(fmt.Sprintf("Listening on %s:%d", cfg.HostIP, cfg.RESTPort))
	return s.router.Run()
}
