package hublist

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig `toml:"log"`
	Bot    BotConfig `toml:"bot"`
	DB     DBConfig  `toml:"db"`
	Web    WebConfig `toml:"web"`
	Spaces struct {
		Key       string `toml:"key"`
		Secret    string `toml:"secret"`
		Region    string `toml:"region"`
		Bucket    string `toml:"bucket"`
		AssetRoot string `toml:"assetroot"`
	} `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds       []snowflake.ID `toml:"dev_guilds"`
	Token           string         `toml:"token"`
	AnnounceChannel snowflake.ID   `toml:"announce_channel"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type WebConfig struct {
	Port          string   `toml:"port"`
	BaseURL       string   `toml:"base_url"`
	SessionKey    string   `toml:"session_key"`
	ClientID      string   `toml:"client_id"`
	ClientSecret  string   `toml:"client_secret"`
	RedirectURL   string   `toml:"redirect_url"`
	AdminUsers    []string `toml:"admin_users"`
	AllowedOrigin string   `toml:"allowed_origin"`
}
