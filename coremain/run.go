package coremain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pmkol/dlist/mlog"
	"github.com/pmkol/dlist/pkg/script"
	"github.com/pmkol/dlist/pkg/store"
)

var version = "dev"

type runFlags struct {
	c         string
	watch     bool
	api       string
	verbose   bool
	asService bool
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dlist",
		Short: "Run deque scenarios against the dlist engine.",
	}

	rf := new(runFlags)
	runCmd := &cobra.Command{
		Use:   "run [-c config_file] [--watch] [--api addr] [script_file]",
		Short: "Run a script.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, rf, args)
			if err != nil {
				return err
			}
			if rf.asService {
				svc, err := service.New(&serverService{cfg: cfg}, svcCfg)
				if err != nil {
					return fmt.Errorf("failed to init service, %w", err)
				}
				return svc.Run()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunDlist(ctx, cfg, cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs := runCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "config file")
	fs.BoolVarP(&rf.watch, "watch", "w", false, "re-run the script when it changes")
	fs.StringVar(&rf.api, "api", "", "serve metrics and list snapshots on this address")
	fs.BoolVarP(&rf.verbose, "verbose", "v", false, "log every step")
	fs.BoolVar(&rf.asService, "as-service", false, "start as a service")
	fs.MarkHidden("as-service")
	rootCmd.AddCommand(runCmd)

	checkCmd := &cobra.Command{
		Use:   "check script_file",
		Short: "Parse a script without running it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lists, %d steps\n", args[0], len(s.Lists), len(s.Steps))
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(checkCmd)

	var dumpConfig string
	dumpCmd := &cobra.Command{
		Use:   "dump [-c config_file]",
		Short: "Print the lists saved by the last run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(dumpConfig)
			if err != nil {
				return fmt.Errorf("fail to load config, %w", err)
			}
			backend, err := openStore(&cfg.Store, mlog.L())
			if err != nil {
				return err
			}
			if backend == nil {
				return errors.New("no store is configured")
			}
			defer backend.Close()
			return dump(cmd.Context(), cmd.OutOrStdout(), backend)
		},
		SilenceUsage: true,
	}
	dumpCmd.Flags().StringVarP(&dumpConfig, "config", "c", "", "config file")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(newServiceCmd())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return rootCmd
}

// dump prints the snapshot saved in backend, lists sorted by name.
func dump(ctx context.Context, w io.Writer, backend store.Backend) error {
	snap, err := backend.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "saved at %s\n", snap.SavedAt.Format(time.RFC3339))
	for _, name := range slices.Sorted(maps.Keys(snap.Lists)) {
		fmt.Fprintf(w, "%s: %v\n", name, snap.Lists[name])
	}
	return nil
}

func Run() error {
	return newRootCmd().Execute()
}

// buildConfig loads the config file, if any, and applies the flags on
// top of it.
func buildConfig(cmd *cobra.Command, rf *runFlags, args []string) (*Config, error) {
	cfg, fileUsed, err := loadConfig(rf.c)
	if err != nil {
		return nil, fmt.Errorf("fail to load config, %w", err)
	}
	if len(fileUsed) > 0 {
		mlog.L().Info("config loaded", zap.String("file", fileUsed))
	}

	if len(args) > 0 {
		cfg.Script.File = args[0]
	}
	if cmd.Flags().Changed("watch") {
		cfg.Script.Watch = rf.watch
	}
	if len(rf.api) > 0 {
		cfg.API.HTTP = rf.api
	}
	if rf.verbose {
		cfg.Log.Level = "debug"
		mlog.SetLevel(zapcore.DebugLevel)
	}

	if len(cfg.Script.File) == 0 {
		return nil, errors.New("no script file is given")
	}
	return cfg, nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// search for a file named "config" in the working directory, and fall
// back to the defaults if there is none.
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(filePath) == 0 && errors.As(err, &notFound) {
			return new(Config), "", nil
		}
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}
