package config

import (
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Redis struct {
		Addr string
		DB   int
	} `mapstructure:"redis"`

	Telegram struct {
		Token       string
		AdminChatID string `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	License struct {
		Prefix          string
		WarnDays        int      `mapstructure:"warn_days"`
		ReverifyMinutes int      `mapstructure:"reverify_minutes"`
		ExemptPages     []string `mapstructure:"exempt_pages"`
	} `mapstructure:"license"`

	Business struct {
		ProjectName   string `mapstructure:"project_name"`
		BusinessType  string `mapstructure:"business_type"`
		ContactNumber string `mapstructure:"contact_number"`
		AdminEmail    string `mapstructure:"admin_email"`
	} `mapstructure:"business"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	// .env only fills variables missing from the environment.
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("license.prefix", "SUDHA")
	v.SetDefault("license.warn_days", 3)
	v.SetDefault("license.reverify_minutes", 5)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
