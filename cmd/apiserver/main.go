package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	redisDriver "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ironmind/internal/config"
	"ironmind/internal/exercises"
	"ironmind/internal/handlers/apiserver"
	appKafka "ironmind/internal/kafka"
	"ironmind/internal/logger"
	"ironmind/internal/middleware"
	appRedis "ironmind/internal/redis"
	"ironmind/internal/services"
	"ironmind/internal/storage"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(os.Getenv("IRONMIND_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}

	if _, err := logger.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化日志: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("API 服务器配置加载成功", zap.String("version", cfg.AppVersion))

	// 2. 初始化数据库连接
	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal("无法初始化数据库", zap.Error(err))
	}
	if err := storage.AutoMigrateTables(db); err != nil {
		logger.Fatal("无法迁移数据库表", zap.Error(err))
	}

	// 3. 初始化 Redis Client
	redisClient := redisDriver.NewClient(&redisDriver.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("无法连接到 Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	defer redisClient.Close()

	tokenBlacklist := appRedis.NewRedisTokenBlacklist(redisClient)
	friendCache := appRedis.NewRedisFriendListCache(redisClient, cfg.Cache.FriendListTTL)

	// 4. 初始化 Repositories
	userRepo := storage.NewGormUserRepository(db)
	relRepo := storage.NewGormRelationshipRepository(db)
	workoutRepo := storage.NewGormWorkoutRepository(db)

	// 5. Kafka 生产者，关闭时关系事件不发布
	var publisher services.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := appKafka.NewConfluentKafkaProducer(cfg.Kafka)
		if err != nil {
			logger.Fatal("无法创建 Kafka 生产者", zap.Error(err))
		}
		defer producer.Close()
		publisher = appKafka.NewRelationshipEventPublisher(producer, cfg.Kafka.RelationshipEventsTopic)
	} else {
		logger.Warn("Kafka 已禁用，关系事件不会被推送")
	}

	// 6. 动作库，加载失败时相关接口返回 503
	catalog, err := exercises.Load(cfg.Catalog.ExercisesPath)
	if err != nil {
		logger.Error("加载动作库失败", zap.String("path", cfg.Catalog.ExercisesPath), zap.Error(err))
	} else {
		logger.Info("动作库已加载", zap.Int("count", catalog.Len()))
	}

	// 7. 初始化 Services 和 Handlers
	authService := services.NewAuthService(userRepo, tokenBlacklist, cfg)
	userService := services.NewUserService(userRepo, relRepo, friendCache)
	friendService := services.NewFriendService(relRepo, userRepo, friendCache, publisher)
	planService := services.NewPlanService(userRepo, workoutRepo)

	r := mux.NewRouter()
	r.Use(logger.RequestLogger)
	apiserver.RegisterRoutes(r, apiserver.Handlers{
		Auth:     apiserver.NewAuthHandler(authService),
		User:     apiserver.NewUserHandler(userService),
		Friend:   apiserver.NewFriendHandler(friendService),
		Plan:     apiserver.NewPlanHandler(planService),
		Exercise: apiserver.NewExerciseHandler(catalog),
	}, middleware.AuthMiddleware(cfg.Auth.JWTSecretKey, tokenBlacklist))

	// 8. CORS
	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.APIServer.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.APIServer.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.APIServer.CORS.AllowedHeaders),
		handlers.ExposedHeaders(cfg.APIServer.CORS.ExposedHeaders),
		handlers.MaxAge(cfg.APIServer.CORS.MaxAge),
	}
	if cfg.APIServer.CORS.AllowCredentials {
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}

	serverAddr := fmt.Sprintf("%s:%s", cfg.APIServer.Host, cfg.APIServer.Port)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      handlers.CORS(corsOptions...)(r),
		ReadTimeout:  cfg.APIServer.ReadTimeout,
		WriteTimeout: cfg.APIServer.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	}

	go func() {
		logger.Info("API 服务器启动", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("API 服务器启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到关闭信号，正在关闭 API 服务器...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("API 服务器强制关闭", zap.Error(err))
		return
	}
	logger.Info("API 服务器已成功关闭")
}
