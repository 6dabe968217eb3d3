package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"fineo-backend/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	SetCatalog(ctx context.Context, key string, pages []entity.NavigationPage, expiration time.Duration) error
	GetCatalog(ctx context.Context, key string) ([]entity.NavigationPage, error)
	DeleteCatalog(ctx context.Context, key string) error
}

type redisClient struct {
	client *redis.Client
	json   jsoniter.API
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, json: jsoniter.ConfigCompatibleWithStandardLibrary}
}

func (r *redisClient) SetCatalog(ctx context.Context, key string, pages []entity.NavigationPage, expiration time.Duration) error {
	logrus.Debug(fmt.Sprintf("Caching %d pages under key %s with expiration %v", len(pages), key, expiration))
	payload, err := r.json.Marshal(pages)
	if err != nil {
		logrus.Error(fmt.Sprintf("Error marshalling catalog for key %s: %v", key, err))
		return err
	}

	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching catalog for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetCatalog(ctx context.Context, key string) ([]entity.NavigationPage, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Catalog cache miss for key %s", key))
		return nil, ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting cached catalog for key %s: %v", key, err))
		return nil, err
	}

	var pages []entity.NavigationPage
	if err := r.json.Unmarshal([]byte(val), &pages); err != nil {
		logrus.Error(fmt.Sprintf("Error unmarshalling cached catalog for key %s: %v", key, err))
		return nil, err
	}
	return pages, nil
}

func (r *redisClient) DeleteCatalog(ctx context.Context, key string) error {
	if _, err := r.client.Del(ctx, key).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting cached catalog for key %s: %v", key, err))
		return err
	}
	return nil
}
