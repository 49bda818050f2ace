package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/logger"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/tracing"
)

const (
	app = "practice-evaluator"
)

type Config struct {
	Listen    string                   `mapstructure:"listen"`
	Variant   string                   `mapstructure:"variant"`
	Backend   BackendConfig            `mapstructure:"backend"`
	Server    ServerConfig             `mapstructure:"server"`
	Heuristic pipeline.HeuristicConfig `mapstructure:"heuristic"`
	Tracing   tracing.Config           `mapstructure:"tracing"`
}

type BackendConfig struct {
	Mode         string        `mapstructure:"mode"`
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	BaseURL      string        `mapstructure:"base-url"`
	Model        string        `mapstructure:"model"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max-tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "practice-evaluator scores interview and coaching practice transcripts",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var envBindings = map[string]string{
	"backend.api-key":      "MINIMAX_API_KEY",
	"backend.api-key-file": "MINIMAX_API_KEY_FILE",
	"backend.model":        "MINIMAX_MODEL",
	"listen":               "PRACTICE_EVALUATOR_LISTEN",
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is practice-evaluator.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("variant", "", "evaluation variant: interview or coaching")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("variant", rootCmd.PersistentFlags().Lookup("variant"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("variant", "interview")

	v.SetDefault("backend.mode", string(pipeline.ModeAuto))
	v.SetDefault("backend.provider", "openai")
	v.SetDefault("backend.timeout", 3*time.Minute)
	v.SetDefault("backend.max-log-length", 200)

	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", 6*time.Minute)
	v.SetDefault("server.request-timeout", 5*time.Minute)

	v.SetDefault("heuristic.max-sampled-turns", 8)
	v.SetDefault("heuristic.verbose-words", 450)
	v.SetDefault("heuristic.short-words", 80)
	v.SetDefault("heuristic.filler-threshold", 8)

	v.SetDefault("tracing.exporter", tracing.ExporterNone)
	v.SetDefault("tracing.service-name", app)
	v.SetDefault("tracing.sample-ratio", 1.0)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; defaults and env cover a bare start.
	// An explicitly named file must exist and parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func buildLogger() (*zap.Logger, error) {
	return logger.NewWithOptions(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Fields: map[string]any{"app": app, "version": version},
	})
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
