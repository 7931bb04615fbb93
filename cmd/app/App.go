package app

import (
	"context"
	"sync"
	"time"

	"github.com/Amala4/Chat-App/configs"
	"github.com/Amala4/Chat-App/internal/handlers"
	"github.com/Amala4/Chat-App/internal/repositories"
	"github.com/Amala4/Chat-App/internal/servers/database"
	"github.com/Amala4/Chat-App/internal/servers/http"
	"github.com/Amala4/Chat-App/internal/services"
	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)

	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.configs)

	chatRepo := repositories.NewChatRepository(db)
	chatService := services.NewChatService(chatRepo, app.redis, app.ctx)
	feedService := services.NewFeedService(
		chatRepo,
		time.Duration(app.configs.Viper.GetInt("feed.poll_interval"))*time.Second,
		time.Duration(app.configs.Viper.GetInt("feed.inactivity_timeout"))*time.Second,
	)

	restHandler := handlers.NewRestHandler(authService, chatService, feedService)
	socketChatHandler := handlers.NewSocketChatHandler(app.redis, app.ctx, chatService)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		restHandler,
		socketChatHandler,
	).Run()
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.addr"),
	})
}
