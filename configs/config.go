package configs

import (
	"log"
	"sync"

	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Viper *viper.Viper
}

func GetConfig() *Config {
	once.Do(func() {
		config = &Config{
			Viper: initializeViper(),
		}
	})
	return config
}

func initializeViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetDefault("server.port", 8000)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "chat_app")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_time", 86400)

	// Live feed timing, in seconds. The stream re-queries the store every
	// poll interval and shuts itself down after the inactivity timeout.
	v.SetDefault("feed.poll_interval", 2)
	v.SetDefault("feed.inactivity_timeout", 240)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using defaults:", err)
	}

	return v
}
