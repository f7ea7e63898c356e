package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvDev  = "DEV"
	EnvTest = "TEST"
	EnvProd = "PROD"

	// session store backends
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type (
	Config struct {
		Env            string
		Debug          bool
		AppName        string
		Build          string
		ConfigDir      string
		APIBaseURL     string
		PageSize       int
		RequestTimeout time.Duration
		RollbarToken   string
		Session        SessionConfig
		DevAPI         DevAPIConfig
	}

	SessionConfig struct {
		Store       string
		File        string
		RedisURL    string
		RedisPrefix string
	}

	DevAPIConfig struct {
		Address            string
		SecretKey          string
		AdminPassword      string
		JWTExpirationDelta time.Duration
		DisableReqLogs     bool
	}
)

// LoadConfig reads the configuration from (in order of precedence) the environment,
// the `.env.<env>` file and the optional `config.yaml` found in the config directory.
func LoadConfig() (*Config, error) {
	v := viper.New()

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", false)
	v.SetDefault("appName", "Learn Hub")
	v.SetDefault("build", "dev")
	v.SetDefault("apiBaseURL", "http://localhost:8080/api")
	v.SetDefault("pageSize", 10)
	v.SetDefault("requestTimeout", time.Duration(0))
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sessionStore", SessionStoreFile)
	v.SetDefault("sessionFile", filepath.Join(dir, "session.json"))
	v.SetDefault("redisURL", "redis://localhost:6379/0")
	v.SetDefault("redisPrefix", "hubadmin:session")
	v.SetDefault("devapi.address", ":8080")
	v.SetDefault("devapi.secretKey", "x3%k9-hub=adm!n)4q#p&w7z2(t+l0v^c8e$r1s")
	v.SetDefault("devapi.adminPassword", "admin123")
	v.SetDefault("devapi.jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("devapi.disableReqLogs", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = EnvDev
	}
	v.SetEnvPrefix("HUBADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}
	v.AutomaticEnv()

	sessFile, err := homedir.Expand(v.GetString("sessionFile"))
	if err != nil {
		return nil, errors.Wrap(err, "expanding sessionFile")
	}

	conf := &Config{
		Env:            env,
		Debug:          v.GetBool("debug"),
		AppName:        v.GetString("appName"),
		Build:          v.GetString("build"),
		ConfigDir:      dir,
		APIBaseURL:     strings.TrimRight(v.GetString("apiBaseURL"), "/"),
		PageSize:       v.GetInt("pageSize"),
		RequestTimeout: v.GetDuration("requestTimeout"),
		RollbarToken:   v.GetString("rollbarToken"),
		Session: SessionConfig{
			Store:       strings.ToLower(v.GetString("sessionStore")),
			File:        sessFile,
			RedisURL:    v.GetString("redisURL"),
			RedisPrefix: v.GetString("redisPrefix"),
		},
		DevAPI: DevAPIConfig{
			Address:            v.GetString("devapi.address"),
			SecretKey:          v.GetString("devapi.secretKey"),
			AdminPassword:      v.GetString("devapi.adminPassword"),
			JWTExpirationDelta: v.GetDuration("devapi.jwtExpirationDelta"),
			DisableReqLogs:     v.GetBool("devapi.disableReqLogs"),
		},
	}
	if conf.PageSize <= 0 {
		conf.PageSize = DefaultPageSize
	}
	return conf, nil
}

// ConfigDir returns the directory holding the config files: $HUBADMIN_CONFIG_DIR or ~/.hubadmin.
func ConfigDir() (string, error) {
	if dir := os.Getenv("HUBADMIN_CONFIG_DIR"); dir != "" {
		return homedir.Expand(dir)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "finding home directory")
	}
	return filepath.Join(home, ".hubadmin"), nil
}

func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}
