// Command gotag is the CLI front end for the evaluation harness: it wires
// the on-disk model registry, the sample pipeline set, and the director/
// report packages together behind the subcommands described in the
// external-interfaces section of this repository's design notes.
//
// The CLI itself carries no independent business logic — every
// subcommand is a thin translation from flags/args to a call into
// internal/director or internal/report, printing through a sink.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gotag/gotag/internal/appconfig"
	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/modelconfig"
	"github.com/gotag/gotag/internal/obslog"
	"github.com/gotag/gotag/internal/pipeline"
	"github.com/gotag/gotag/internal/registry"
	"github.com/gotag/gotag/samples"
)

// version is overridden at build time via -ldflags.
var version = "0.0.0"

var cfgFile string

// commandLineFlag mirrors the teacher's flag-struct idiom: one value
// describing a flag's name/shorthand/default/usage, shared by every
// subcommand that needs it instead of repeating cmd.Flags().StringP calls.
type commandLineFlag struct {
	name, shorthand, defaultValue, usage string
}

var (
	baseFolderFlag = commandLineFlag{
		name: "base-folder", usage: "root folder for run logs and model configuration (default is the XDG data dir)",
	}
	logFolderFlag = commandLineFlag{
		name: "log-folder", defaultValue: "logs", usage: "run-log folder, relative to --base-folder",
	}
	modelConfigFlag = commandLineFlag{
		name: "model-config-file", defaultValue: "models.json", usage: "model descriptor file, relative to --base-folder",
	}
	modelCredsFlag = commandLineFlag{
		name: "model-credentials-file", defaultValue: ".credentials.json", usage: "model credentials file, relative to --base-folder",
	}
	concurrencyFlag = commandLineFlag{
		name: "concurrency", shorthand: "c", usage: "max cases run concurrently (default is the app's configured default)",
	}
	logLevelFlag = commandLineFlag{
		name: "log-level", defaultValue: "info", usage: "console log level: debug, info, warn, error",
	}
)

func bindStringFlag(cmd *cobra.Command, flag commandLineFlag) {
	cmd.PersistentFlags().StringP(flag.name, flag.shorthand, flag.defaultValue, flag.usage)
	_ = viper.BindPFlag(flag.name, cmd.PersistentFlags().Lookup(flag.name))
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appconfig.ProgramName,
		Short:         "Evaluation harness for language-model pipelines",
		Long:          appconfig.ProgramName + " runs test-case suites through DAG pipelines and reports the results.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (default is gotag.yaml in the current directory, then in $HOME/.config/gotag)")
	bindStringFlag(root, baseFolderFlag)
	bindStringFlag(root, logFolderFlag)
	bindStringFlag(root, modelConfigFlag)
	bindStringFlag(root, modelCredsFlag)
	bindStringFlag(root, concurrencyFlag)
	bindStringFlag(root, logLevelFlag)

	cobra.OnInitialize(initViper)

	root.AddCommand(
		newRunCommand(),
		newRerunCommand(),
		newFormatCommand(),
		newSummarizeCommand(),
		newCompareCommand(),
		newHistoryCommand(),
		newModelsCommand(),
		newPipelinesCommand(),
		newAddIDsCommand(),
	)
	return root
}

func initViper() {
	viper.SetEnvPrefix("GOTAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gotag")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gotag"))
		}
	}
	// A missing config file is not an error: every setting already has a
	// built-in default or an env/flag override.
	_ = viper.ReadInConfig()
}

// appContext bundles the resolved app configuration and logger every
// subcommand needs. Building the model registry is left to its registry method
// since several subcommands (format, summarize, compare, history,
// pipelines, add-ids) never touch a model at all.
type appContext struct {
	cfg    appconfig.Config
	logger *slog.Logger
}

func newAppContext() *appContext {
	defaults := appconfig.Default()

	cfg := appconfig.Config{
		BaseFolder:           viper.GetString(baseFolderFlag.name),
		LogFolder:            viper.GetString(logFolderFlag.name),
		ModelConfigFile:      viper.GetString(modelConfigFlag.name),
		ModelCredentialsFile: viper.GetString(modelCredsFlag.name),
		DefaultConcurrency:   defaults.DefaultConcurrency,
	}
	if cfg.BaseFolder == "" {
		cfg.BaseFolder = defaults.BaseFolder
	}
	if cfg.LogFolder == "" {
		cfg.LogFolder = defaults.LogFolder
	}
	if cfg.ModelConfigFile == "" {
		cfg.ModelConfigFile = defaults.ModelConfigFile
	}
	if cfg.ModelCredentialsFile == "" {
		cfg.ModelCredentialsFile = defaults.ModelCredentialsFile
	}
	if n := viper.GetInt(concurrencyFlag.name); n > 0 {
		cfg.DefaultConcurrency = n
	}

	logger := obslog.New(obslog.Options{Level: obslog.ParseLevel(viper.GetString(logLevelFlag.name))})
	return &appContext{cfg: cfg, logger: logger}
}

// registry loads an optional ".env" (for credentials kept out of the
// committed model-credentials file), then the model descriptor +
// credentials files into a fresh process-wide registry.
func (a *appContext) registry() (*registry.Registry, error) {
	_ = godotenv.Load()

	reg := registry.New(nil)
	opCtx := (*gerr.OpContext)(nil).Push("loading model configuration")
	if err := modelconfig.Load(a.cfg.ModelConfigPath(), a.cfg.ModelCredentialsPath(), reg, modelconfig.DefaultBuilders()); err != nil {
		return nil, opCtx.Wrap(err)
	}
	return reg, nil
}

// samplesByName returns the in-process pipeline registry, the only
// pipeline source this tree ships — pipeline *.pipeline.json sidecars
// are metadata-only (see internal/pipeline.DiscoverFiles) and never
// substitute for a registered Go CreateDAG factory.
func samplesByName() map[string]*pipeline.Spec { return samples.Registry() }

// lookupPipeline finds name in the sample registry, or returns a
// NotFound error enumerating what's available.
func lookupPipeline(name string) (*pipeline.Spec, error) {
	specs := samplesByName()
	if spec, ok := specs[name]; ok {
		return spec, nil
	}
	names := make([]string, 0, len(specs))
	for n := range specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, gerr.NewNotFound("pipeline", name+" (available: "+strings.Join(names, ", ")+")")
}

func exitError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
