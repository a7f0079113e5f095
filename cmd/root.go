package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/ai"
	"github.com/spigell/hire-assistant/internal/ai/gemini"
	"github.com/spigell/hire-assistant/internal/logger"
	"github.com/spigell/hire-assistant/internal/matching"
	"github.com/spigell/hire-assistant/internal/recruitapi"
	"github.com/spigell/hire-assistant/internal/secrets"
	"github.com/spigell/hire-assistant/internal/taglist"
)

const (
	app = "hire-assistant"
)

type Config struct {
	APIURL     string          `mapstructure:"api-url"`
	TokenFile  string          `mapstructure:"token-file"`
	UserAgent  string          `mapstructure:"user-agent"`
	Timeout    time.Duration   `mapstructure:"timeout"`
	PageSize   int             `mapstructure:"page-size"`
	UniqueTags bool            `mapstructure:"unique-tags"`
	Matches    matching.Config `mapstructure:"matches"`
	AI         *AIConfig       `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "hire-assistant is a cli for managing job postings, resumes and candidate matches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"api-url":                "HIRE_API_URL",
		"token-file":             "HIRE_TOKEN_FILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("api-url", recruitapi.DefaultAPIURL)
	viper.SetDefault("page-size", 5)
	viper.SetDefault("matches.missing-skill-cap", matching.DefaultMissingSkillCap)
	viper.SetDefault("ai.provider", gemini.Provider)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hire-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", recruitapi.DefaultAPIURL, "base url of the hiring assistant api")
	rootCmd.PersistentFlags().String("token-file", "", "file with a bearer token for the api")

	for _, name := range []string{"debug", "json", "api-url", "token-file"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}
}

// initConfig reads the optional config file. Only an explicitly given file must exist.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func (c *Config) tagOptions() []taglist.Option {
	if c.UniqueTags {
		return []taglist.Option{taglist.WithoutDuplicates()}
	}
	return nil
}

// env is what every command needs to talk to the api.
type env struct {
	logger *zap.Logger
	config *Config
	client *recruitapi.Client
}

func newEnv() (*env, error) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	token, err := secrets.Optional(secrets.Source{
		Name: "api token",
		File: config.TokenFile,
	})
	if err != nil {
		logger.Error("loading api token",
			zap.Error(err),
			zap.String("hint", "set HIRE_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
		return nil, err
	}

	client := recruitapi.New(logger, config.APIURL, token)
	client.SetTimeout(config.Timeout)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return &env{logger: logger, config: config, client: client}, nil
}

func newDrafter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Drafter, error) {
	if cfg == nil {
		return nil, errors.New("ai section is not configured")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewDrafter(generator, logger, cfg.Gemini.MaxLogLength), nil
}
