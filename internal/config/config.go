// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Уровни строгости валидации email.
const (
	// ValidationBasic проверяет только наличие символа @.
	ValidationBasic = "basic"
	// ValidationStrict проверяет полный формат адреса local@domain.tld.
	ValidationStrict = "strict"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	ValidationLevel         string `yaml:"validation_level" env-default:"strict"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQConnection      `yaml:"rabbitmq_connection"`
	SMTPConnection          `yaml:"smtp_connection"`
	HTTPServer              `yaml:"http_server"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQConnection структура для настройки подключения к rabbitmq.
// Пустой адрес означает, что публикация приветственных писем выключена.
type RabbitMQConnection struct {
	AddressRabbitMQ string        `yaml:"addressrabbitmq"`
	Retries         int           `yaml:"retries" env-default:"5"`
	RetryDelay      time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTPConnection структура для настройки SMTP-сервера рассылки
type SMTPConnection struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.ValidationLevel != ValidationBasic && cfg.ValidationLevel != ValidationStrict {
		log.Fatalf("unknown validation_level: %s", cfg.ValidationLevel)
	}
	return &cfg
}
