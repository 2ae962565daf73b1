package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matthijsbreemans/ocr/internal/config"
	"github.com/matthijsbreemans/ocr/internal/document"
	"github.com/matthijsbreemans/ocr/internal/lang"
	"github.com/matthijsbreemans/ocr/internal/recognizer"
	"github.com/matthijsbreemans/ocr/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// errUsage marks the one failure that exits non-zero: a missing image path.
// Recognition failures are reported inside the result document with exit 0.
var errUsage = errors.New("usage: ocr <image_path> [language]")

// newRecognizer builds the OCR engine from configuration. Tests replace it to
// run the command without a Tesseract installation.
var newRecognizer = func(cfg *config.Config) recognizer.Recognizer {
	ec := recognizer.DefaultConfig()
	if cfg.Engine.NumThreads > 0 {
		ec.NumThreads = cfg.Engine.NumThreads
	}
	ec.DataDir = cfg.Engine.DataDir
	ec.DPI = cfg.Engine.DPI
	ec.Quiet = cfg.Engine.Quiet
	ec.MaxDimension = cfg.Image.MaxDimension
	return recognizer.NewTesseractEngine(ec)
}

// rootCmd is the whole CLI: one image in, one JSON document out.
var rootCmd = &cobra.Command{
	Use:   "ocr <image_path> [language]",
	Short: "Run OCR on an image and print a normalized JSON document",
	Long: `Runs a pretrained OCR engine on a single image and prints a normalized JSON
document on standard output.

The document reports success or failure in its body: any recognition failure
(unreadable image, engine or model error) still exits 0 with the error message
inside the JSON. Only a missing image path exits non-zero.

Examples:
  ocr photo.jpg
  ocr scan.png fra
  ocr receipt.jpg --language deu --tessdata-dir /usr/share/tessdata`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.PersistentFlags().GetBool("version"); v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ocr version %s (commit: %s, built: %s)\n", ver, commit, date)
			return nil
		}

		cfg := GetConfig()

		if len(args) == 0 {
			// Usage failures share the result document shape so callers can
			// always parse stdout, but exit non-zero.
			if err := document.Failure(errUsage).Encode(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to write result document: %w", err)
			}
			return errUsage
		}

		imagePath := args[0]
		language := cfg.Language
		if len(args) > 1 {
			language = args[1]
		}
		engineLang := lang.Resolve(language)
		slog.Debug("starting recognition", "image", imagePath, "language", engineLang)

		doc := runRecognition(cmd.Context(), cfg, imagePath, engineLang)
		if err := doc.Encode(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write result document: %w", err)
		}
		return nil
	},
}

// runRecognition performs the single OCR invocation and funnels every failure
// into a result document; it never returns an error.
func runRecognition(ctx context.Context, cfg *config.Config, imagePath, language string) *document.ResultDocument {
	if ctx == nil {
		ctx = context.Background()
	}
	eng := newRecognizer(cfg)
	defer func() {
		if err := eng.Close(); err != nil {
			slog.Warn("error closing recognizer", "error", err)
		}
	}()

	raw, err := eng.Recognize(ctx, imagePath, language)
	if err != nil {
		slog.Debug("recognition failed", "image", imagePath, "error", err)
		return document.Failure(err)
	}
	return document.FromRaw(raw)
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/ocr, /etc/ocr)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "error", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	rootCmd.Flags().StringP("language", "l", "eng", "recognition language (positional argument wins)")
	rootCmd.Flags().String("tessdata-dir", "",
		"directory containing traineddata files (can also be set via OCR_ENGINE_DATA_DIR)")
	rootCmd.Flags().Int("threads", 0, "engine CPU thread cap (0 = all cores)")
	rootCmd.Flags().Int("dpi", 0, "input resolution hint for the engine (0 = unknown)")
	rootCmd.Flags().Int("max-dimension", 4096, "downscale images whose longest side exceeds this (0 = never)")

	bindRootFlags(rootCmd)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}
		setupLogging(GetConfig())
	}
}

// bindRootFlags binds flags to viper configuration keys.
func bindRootFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"verbose", "verbose"},
		{"log_level", "log-level"},
		{"language", "language"},
		{"engine.data_dir", "tessdata-dir"},
		{"engine.num_threads", "threads"},
		{"engine.dpi", "dpi"},
		{"image.max_dimension", "max-dimension"},
	}
	for _, binding := range flagBindings {
		flag := cmd.Flags().Lookup(binding.flag)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(binding.flag)
		}
		if err := viper.BindPFlag(binding.key, flag); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

// setupLogging configures slog on stderr; stdout is reserved for the
// result document.
func setupLogging(cfg *config.Config) {
	var logLevel slog.Level
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "info":
			logLevel = slog.LevelInfo
		case "warn":
			logLevel = slog.LevelWarn
		default:
			logLevel = slog.LevelError
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Local .env files supply environment overrides (OCR_* keys); a missing
	// file is not an error.
	_ = godotenv.Load()

	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration, re-unmarshaled so that CLI flag
// bindings registered after the initial load are included.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	var cfg config.Config
	if err := GetConfigLoader().GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}
	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
