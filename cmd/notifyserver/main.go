package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	redisDriver "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ironmind/internal/auth"
	"ironmind/internal/config"
	"ironmind/internal/handlers/notifyserver"
	appKafka "ironmind/internal/kafka"
	kafkahandlers "ironmind/internal/kafka/handlers"
	"ironmind/internal/logger"
	appRedis "ironmind/internal/redis"
	"ironmind/internal/websocket"
)

func main() {
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

	// 2. Redis 黑名单，连接失败时只校验签名
	var blacklist auth.TokenBlacklist
	redisClient := redisDriver.NewClient(&redisDriver.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("无法连接到 Redis，已登出的 Token 仍可连接", zap.Error(err))
	} else {
		blacklist = appRedis.NewRedisTokenBlacklist(redisClient)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// 4. Kafka 消费者：关系事件 -> Hub
	var wg sync.WaitGroup
	if cfg.Kafka.Enabled {
		consumer, err := appKafka.NewConfluentKafkaConsumer(cfg.Kafka)
		if err != nil {
			logger.Fatal("无法创建 Kafka 消费者", zap.Error(err))
		}
		defer consumer.Close()

		eventHandler := kafkahandlers.NewRelationshipEventHandler(hub)
		wg.Add(1)
		go func() {
			defer wg.Done()
			topics := []string{cfg.Kafka.RelationshipEventsTopic}
			if err := consumer.Consume(ctx, topics, cfg.Kafka.ConsumerGroup, eventHandler.Handle); err != nil {
				logger.Error("Kafka 消费者错误", zap.Error(err))
			}
			logger.Info("Kafka 消费者 goroutine 已停止")
		}()
	} else {
		logger.Warn("Kafka 已禁用，不会有通知被推送")
	}

	// 5. HTTP 路由
	wsHandler := notifyserver.NewWebSocketHandler(hub, blacklist, cfg)
	r := mux.NewRouter()
	r.Use(logger.RequestLogger)
	r.HandleFunc(cfg.NotifyServer.WebSocketPath, wsHandler.ServeWS)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	serverAddr := fmt.Sprintf("%s:%s", cfg.NotifyServer.Host, cfg.NotifyServer.Port)
	httpServer := &http.Server{Addr: serverAddr, Handler: r}

	go func() {
		logger.Info("通知服务器启动",
			zap.String("addr", serverAddr),
			zap.String("path", cfg.NotifyServer.WebSocketPath))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("通知服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("通知服务器准备关闭...")

	cancel()
	wg.Wait()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		logger.Error("通知服务器关闭失败", zap.Error(err))
		return
	}
	logger.Info("通知服务器已优雅关闭")
}
