package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/sheefra/api"
	api_i "github.com/beka-birhanu/sheefra/api/i"
	puzzleapi "github.com/beka-birhanu/sheefra/api/puzzle"
	"github.com/beka-birhanu/sheefra/config"
	"github.com/beka-birhanu/sheefra/infrastruture/history"
	"github.com/beka-birhanu/sheefra/infrastruture/repo"
	"github.com/beka-birhanu/sheefra/infrastruture/token"
	"github.com/beka-birhanu/sheefra/logger"
	"github.com/beka-birhanu/sheefra/service"
	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient         *mongo.Client
	redisClient         *redis.Client
	badgerHistory       *history.BadgerWalkHistory
	walkHistory         i.WalkHistory
	puzzleRepo          i.PuzzleRepo
	jwtTokenizer        i.Tokenizer
	generatorManager    *service.GeneratorManager
	puzzleService       i.PuzzleService
	generatorController api_i.Controller
	puzzleController    api_i.Controller
	router              *api.Router
	appLogger           i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initPuzzleRepo(client *mongo.Client) {
	puzzleRepo = repo.NewPuzzleRepo(client, config.Envs.DBName, "puzzles")
	appLogger.Info("Puzzle repository initialized")
}

func initWalkHistory(ctx context.Context) {
	var err error
	switch config.Envs.HistoryBackend {
	case config.HistoryBadger:
		badgerHistory, err = history.NewBadgerWalkHistory(config.Envs.BadgerPath, config.Envs.HistoryTTLSeconds)
		walkHistory = badgerHistory
	default:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Envs.RedisAddr,
			Password: config.Envs.RedisPassword,
		})
		if err = redisClient.Ping(ctx).Err(); err != nil {
			break
		}
		walkHistory, err = history.NewRedisWalkHistory(redisClient, config.Envs.HistoryTTLSeconds, config.Envs.HistoryCapacity)
	}
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s walk history: %v", config.Envs.HistoryBackend, err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Walk history initialized (%s)", config.Envs.HistoryBackend))
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initGeneratorManager() {
	generatorLogger, err := logger.New("GENERATOR", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator logger: %v", err))
		os.Exit(1)
	}

	generatorManager, err = service.NewGeneratorManager(&service.GeneratorConfig{
		History:      walkHistory,
		Logger:       generatorLogger,
		StepBudget:   config.Envs.SearchStepBudget,
		Timeout:      time.Duration(config.Envs.SearchTimeoutMS) * time.Millisecond,
		MaxDimension: config.Envs.MaxBoardDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generator manager initialized")
}

func initPuzzleService() {
	puzzleLogger, err := logger.New("PUZZLE", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating puzzle logger: %v", err))
		os.Exit(1)
	}

	puzzleService, err = service.NewPuzzleService(&service.PuzzlesConfig{
		Generators: generatorManager,
		PuzzleRepo: puzzleRepo,
		Tokenizer:  jwtTokenizer,
		Logger:     puzzleLogger,
		RevealTTL:  time.Duration(config.Envs.RevealTokenTTLSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating puzzle service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Puzzle service initialized")
}

func initControllers() {
	var err error
	generatorController, err = puzzleapi.NewGeneratorController(generatorManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator controller: %v", err))
		os.Exit(1)
	}
	puzzleController = puzzleapi.NewPuzzleController(puzzleService)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{generatorController, puzzleController},
		AuthorizationMiddleware: puzzleapi.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	config.Load()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initPuzzleRepo(mongoClient)
	initWalkHistory(ctx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		if badgerHistory != nil {
			_ = badgerHistory.Close()
		}
	}()

	initJWTTokenizer()
	initGeneratorManager()
	defer generatorManager.StopAll()
	initPuzzleService()
	initControllers()
	initRouter(jwtTokenizer)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- router.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Run HTTP server until it fails or the process is asked to stop
	select {
	case err := <-serverErr:
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
	case sig := <-stop:
		appLogger.Info(fmt.Sprintf("Received %s, shutting down", sig))
	}
}
