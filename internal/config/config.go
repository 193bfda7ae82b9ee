package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Meta            Meta            `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	ReportRetention ReportRetention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Meta concentra a política de acesso à API de insights: tamanho dos chunks de
// datas, limites de paginação, tentativas e pausas entre requisições. O token
// de acesso não mora aqui: ele é fornecido pelo chamador a cada requisição.
type Meta struct {
	BaseURL   string `mapstructure:"meta_base_url"`
	Version   string `mapstructure:"meta_version"`
	URL       string `mapstructure:"-"`
	AppID     string `mapstructure:"meta_app_id"`
	AppSecret string `mapstructure:"meta_app_secret"`

	PageLimit        int  `mapstructure:"meta_page_limit"`
	ChunkDays        int  `mapstructure:"meta_chunk_days"`
	MaxPagesPerChunk int  `mapstructure:"meta_max_pages_per_chunk"`
	MaxRetries       int  `mapstructure:"meta_max_retries"`
	RetryBaseDelayMs int  `mapstructure:"meta_retry_base_delay_ms"`
	PageDelayMs      int  `mapstructure:"meta_page_delay_ms"`
	ChunkDelayMs     int  `mapstructure:"meta_chunk_delay_ms"`
	FetchAgeGender   bool `mapstructure:"meta_fetch_age_gender"`
}

// RetryBaseDelay é o atraso inicial do backoff exponencial entre tentativas
func (m Meta) RetryBaseDelay() time.Duration {
	return time.Duration(m.RetryBaseDelayMs) * time.Millisecond
}

// PageDelay é a pausa entre páginas consecutivas de um mesmo chunk
func (m Meta) PageDelay() time.Duration {
	return time.Duration(m.PageDelayMs) * time.Millisecond
}

// ChunkDelay é a pausa entre chunks consecutivos de uma mesma busca
func (m Meta) ChunkDelay() time.Duration {
	return time.Duration(m.ChunkDelayMs) * time.Millisecond
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type ReportRetention struct {
	CronSchedule  string `mapstructure:"report_retention_cron"`
	RetentionDays int    `mapstructure:"report_retention_days"`
	Enabled       bool   `mapstructure:"report_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/capi_impact")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v23.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")

	// Política de busca de insights: chunks de 7 dias, páginas de 100
	// registros, no máximo 5 páginas por chunk, 3 novas tentativas com
	// backoff a partir de 1s, pausas de 300ms entre páginas e 500ms entre
	// chunks para respeitar o rate limit da API
	viper.SetDefault("META_PAGE_LIMIT", 100)
	viper.SetDefault("META_CHUNK_DAYS", 7)
	viper.SetDefault("META_MAX_PAGES_PER_CHUNK", 5)
	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_RETRY_BASE_DELAY_MS", 1000)
	viper.SetDefault("META_PAGE_DELAY_MS", 300)
	viper.SetDefault("META_CHUNK_DELAY_MS", 500)
	viper.SetDefault("META_FETCH_AGE_GENDER", false) // breakdown mais sujeito a timeout

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("REPORT_RETENTION_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("REPORT_RETENTION_DAYS", 90)
	viper.SetDefault("REPORT_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
