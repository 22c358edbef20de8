package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr      string `yaml:"http_addr"`
	BaseURL       string `yaml:"base_url"` // scheme://host[:port], used when a request base url cannot be derived
	TemplatesDir  string `yaml:"templates_dir"`
	JwtTTL        int    `yaml:"jwt_ttl"`   // seconds
	TokenTTL      int    `yaml:"token_ttl"` // verification token lifetime, seconds
	BcryptCost    int    `yaml:"bcrypt_cost"`
	SecureCookies bool   `yaml:"secure_cookies"`
	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	Email  Email  `yaml:"email"`
	JwtKey string `yaml:"jwt_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer    string `yaml:"smtp_server"`
	SMTPPort      int    `yaml:"smtp_port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	SenderName    string `yaml:"sender_name"`
	SenderAddress string `yaml:"sender_address"`
	Timeout       int    `yaml:"timeout"` // seconds
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTL) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Public.TokenTTL) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

func (p *Public) applyDefaults() {
	if p.HttpAddr == "" {
		p.HttpAddr = ":8080"
	}
	if p.TemplatesDir == "" {
		p.TemplatesDir = "templates"
	}
	if p.JwtTTL == 0 {
		p.JwtTTL = int((24 * time.Hour).Seconds())
	}
	if p.TokenTTL == 0 {
		p.TokenTTL = int((24 * time.Hour).Seconds())
	}
	if p.BcryptCost == 0 {
		p.BcryptCost = 10
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}
