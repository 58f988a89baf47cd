package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"preamble.dev/pkg/preamble/internal/adapter"
	"preamble.dev/pkg/preamble/internal/domain"
	m "preamble.dev/pkg/preamble/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "preamble"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	extensionFlagName        = "ext"
	excludePrefixFlagName    = "exclude-prefix"
	excludeSubstringFlagName = "exclude-substring"
	modeFlagName             = "mode"
	templateFlagName         = "template"
	templateNameFlagName     = "template-name"
	stopAtFlagName           = "stop-at"
	markerFlagName           = "marker"
	noIgnoreFlagName         = "no-ignore"
	runParallelFlagName      = "parallel"
	dryRunFlagName           = "dry-run"
	diffFlagName             = "diff"
	reportFlagName           = "report"
	logFlagName              = "log"
	verboseFlagName          = "verbose"

	extensionsConfigKey        = "paths.extensions"
	excludePrefixesConfigKey   = "paths.exclude_prefixes"
	excludeSubstringsConfigKey = "paths.exclude_substrings"
	modeConfigKey              = "preamble.mode"
	templateConfigKey          = "preamble.template"
	templateNameConfigKey      = "preamble.template_name"
	stopAtConfigKey            = "preamble.stop_at"
	markersConfigKey           = "preamble.markers"
	commentTokensConfigKey     = "comments.tokens"
	ignoreEnabledConfigKey     = "ignore.enabled"
	ignoreCommandConfigKey     = "ignore.command"
	runParallelConfigKey       = "run.parallel"
	dryRunConfigKey            = "run.dry_run"
	reportConfigKey            = "run.report"

	defaultMode          = string(m.ModeDynamic)
	defaultTemplateName  = adapter.DefaultTemplateName
	defaultIgnoreEnabled = true
	defaultIgnoreCommand = "git"
	defaultRunParallel   = 1

	envPrefix = "PREAMBLE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".preamble.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	defaultExtensions        = []string{".rs"}
	defaultExcludePrefixes   = []string{"target", "node_modules"}
	defaultExcludeSubstrings = []string{"vendor", "midir", "/target/"}
	defaultMarkers           = []string{"Copyright (c)", "The MIT License"}

	// Keys carry no leading dot: viper treats dots as key separators.
	defaultCommentTokens = map[string]string{
		"rs":    "// ",
		"go":    "// ",
		"c":     "// ",
		"h":     "// ",
		"cc":    "// ",
		"cpp":   "// ",
		"hpp":   "// ",
		"m":     "// ",
		"mm":    "// ",
		"swift": "// ",
		"java":  "// ",
		"kt":    "// ",
		"js":    "// ",
		"jsx":   "// ",
		"ts":    "// ",
		"tsx":   "// ",
		"py":    "# ",
		"sh":    "# ",
		"rb":    "# ",
		"toml":  "# ",
		"yaml":  "# ",
		"yml":   "# ",
		"sql":   "-- ",
		"lua":   "-- ",
	}
)

var globalLogger *slog.Logger

// configLoadErr holds a config file that exists but could not be parsed.
var configLoadErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		configLoadErr = err
	}
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(extensionsConfigKey, defaultExtensions)
	viper.SetDefault(excludePrefixesConfigKey, defaultExcludePrefixes)
	viper.SetDefault(excludeSubstringsConfigKey, defaultExcludeSubstrings)
	viper.SetDefault(modeConfigKey, defaultMode)
	viper.SetDefault(templateConfigKey, "")
	viper.SetDefault(templateNameConfigKey, defaultTemplateName)
	viper.SetDefault(stopAtConfigKey, "")
	viper.SetDefault(markersConfigKey, defaultMarkers)
	viper.SetDefault(commentTokensConfigKey, defaultCommentTokens)
	viper.SetDefault(ignoreEnabledConfigKey, defaultIgnoreEnabled)
	viper.SetDefault(ignoreCommandConfigKey, defaultIgnoreCommand)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(dryRunConfigKey, false)
	viper.SetDefault(reportConfigKey, "")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// runConfigFromViper snapshots the current configuration into an immutable
// RunConfig for one run over roots.
func runConfigFromViper(roots []m.Path) (m.RunConfig, error) {
	mode, ok := m.ParseResolverMode(viper.GetString(modeConfigKey))
	if !ok {
		return m.RunConfig{}, fmt.Errorf("%w: unknown mode %q (want %q or %q)",
			domain.ErrConfig, viper.GetString(modeConfigKey), m.ModeDynamic, m.ModeFixed)
	}

	config := m.RunConfig{
		Roots:             roots,
		Extensions:        viper.GetStringSlice(extensionsConfigKey),
		ExcludePrefixes:   viper.GetStringSlice(excludePrefixesConfigKey),
		ExcludeSubstrings: viper.GetStringSlice(excludeSubstringsConfigKey),
		Markers:           viper.GetStringSlice(markersConfigKey),
		CommentTokens:     viper.GetStringMapString(commentTokensConfigKey),
		Mode:              mode,
		TemplatePath:      m.Path(viper.GetString(templateConfigKey)),
		TemplateName:      viper.GetString(templateNameConfigKey),
		StopAt:            m.Path(viper.GetString(stopAtConfigKey)),
		IgnoreEnabled:     viper.GetBool(ignoreEnabledConfigKey),
		IgnoreCommand:     viper.GetString(ignoreCommandConfigKey),
		Threads:           viper.GetInt(runParallelConfigKey),
		DryRun:            viper.GetBool(dryRunConfigKey),
	}

	if mode == m.ModeFixed && strings.TrimSpace(string(config.TemplatePath)) == "" {
		return m.RunConfig{}, fmt.Errorf("%w: --%s is required in %s mode", domain.ErrConfig, templateFlagName, m.ModeFixed)
	}

	if config.Threads <= 0 {
		config.Threads = defaultRunParallel
	}

	return config, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
