package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pion/webrtc/v4"
)

const (
	TranscriptStoreFile     = "file"
	TranscriptStorePostgres = "postgres"
)

type Config struct {
	Debug      bool   `env:"DEBUG" envDefault:"false"`
	Port       string `env:"PORT" envDefault:"3000"`
	MetricPort string `env:"METRIC_PORT" envDefault:"9090"`
	Domain     string `env:"DOMAIN" envDefault:"http://localhost:3000"`

	// JWTSecret - если пустой, комнаты доступны без авторизации
	JWTSecret string `env:"JWT_SECRET"`

	RoomTTL      time.Duration `env:"ROOM_TTL" envDefault:"30m"`
	ReapInterval time.Duration `env:"REAP_INTERVAL" envDefault:"1m"`

	TranscriptStore string `env:"TRANSCRIPT_STORE" envDefault:"file"`
	TranscriptDir   string `env:"TRANSCRIPT_DIR" envDefault:"./transcripts"`

	STUNURLs []string `env:"STUN_URLS" envDefault:"stun:stun.l.google.com:19302" envSeparator:","`

	TurnUDPServer webrtc.ICEServer
	TurnTCPServer webrtc.ICEServer

	CoturnServer CoturnConfig
	Postgres     PostgresConfig
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"consultations"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

type CoturnConfig struct {
	Host string `env:"COTURN_HOST"`

	// Secret - нужен для генерации временных кредов для фронта
	Secret string `env:"COTURN_SECRET"`
}

// TurnEnabled сообщает, настроен ли coturn
func (c *Config) TurnEnabled() bool {
	return c.CoturnServer.Host != ""
}

func New() (*Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch c.TranscriptStore {
	case TranscriptStoreFile, TranscriptStorePostgres:
	default:
		return nil, fmt.Errorf("unknown transcript store %q", c.TranscriptStore)
	}

	if c.RoomTTL < 0 {
		return nil, fmt.Errorf("negative room ttl: %s", c.RoomTTL)
	}

	if c.TurnEnabled() {
		c.TurnUDPServer = webrtc.ICEServer{
			URLs: []string{fmt.Sprintf("turn:%s?transport=udp", c.CoturnServer.Host)},
		}

		c.TurnTCPServer = webrtc.ICEServer{
			URLs: []string{fmt.Sprintf("turn:%s?transport=tcp", c.CoturnServer.Host)},
		}
	}

	return &c, nil
}
