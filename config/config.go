package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type PaymentConfig struct {
	GatewayURL  string `yaml:"gateway_url" json:"gateway_url"`
	BearerToken string `yaml:"bearer_token" json:"bearer_token"`
	Currency    string `yaml:"currency" json:"currency"`
}

type ChatConfig struct {
	// SupportPhone is included in the pre-filled hand-off message.
	SupportPhone string `yaml:"support_phone" json:"support_phone"`
}

type CloudinaryConfig struct {
	URL    string `yaml:"url" json:"url"`
	Folder string `yaml:"folder" json:"folder"`
}

type MailConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	AlertTo  string `yaml:"alert_to" json:"alert_to"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Payment    PaymentConfig    `yaml:"payment" json:"payment"`
	Chat       ChatConfig       `yaml:"chat" json:"chat"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary" json:"cloudinary"`
	Mail       MailConfig       `yaml:"mail" json:"mail"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "storefront",
		Location: "Asia/Jakarta",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-storefront-b9bb-9a0d6ee9f239",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Payment: PaymentConfig{
		GatewayURL: "https://api.pay.example.com/v1",
		Currency:   "IDR",
	},
	Chat: ChatConfig{
		SupportPhone: "6281234567890",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

// LoadConfig reads the yaml config file and applies environment overrides.
// A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				cfg = DefaultAppConfig
			}
		}
	}

	setEnvValue("STOREFRONT_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("STOREFRONT_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("STOREFRONT_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("STOREFRONT_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("STOREFRONT_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("STOREFRONT_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("STOREFRONT_PAYMENT_GATEWAY_URL", func(v string) { cfg.Payment.GatewayURL = v })
	setEnvValue("STOREFRONT_PAYMENT_TOKEN", func(v string) { cfg.Payment.BearerToken = v })
	setEnvValue("STOREFRONT_CLOUDINARY_URL", func(v string) { cfg.Cloudinary.URL = v })
	return cfg
}
