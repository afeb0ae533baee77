package coremain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmkol/dlist/mlog"
)

var svcCfg = &service.Config{
	Name:        "dlist",
	DisplayName: "dlist",
	Description: "Runs a dlist script, re-running it on change and serving its lists.",
}

type serverService struct {
	cfg    *Config
	cancel context.CancelFunc
	done   chan struct{}
}

func (ss *serverService) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	ss.cancel = cancel
	ss.done = make(chan struct{})
	go func() {
		defer close(ss.done)
		if err := RunDlist(ctx, ss.cfg, os.Stdout); err != nil {
			mlog.L().Fatal("dlist exited", zap.Error(err))
		}
	}()
	return nil
}

func (ss *serverService) Stop(s service.Service) error {
	ss.cancel()
	<-ss.done
	return nil
}

// svcArguments returns the run command line of the installed service.
// Paths are made absolute since services do not start in the caller's
// working directory.
func svcArguments(configFile, scriptFile string) ([]string, error) {
	args := []string{"run", "--as-service", "--watch"}
	if len(configFile) > 0 {
		p, err := filepath.Abs(configFile)
		if err != nil {
			return nil, err
		}
		args = append(args, "-c", p)
	}
	if len(scriptFile) > 0 {
		p, err := filepath.Abs(scriptFile)
		if err != nil {
			return nil, err
		}
		args = append(args, p)
	}
	return args, nil
}

func newServiceCmd() *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage dlist as a system service.",
	}
	serviceCmd.AddCommand(
		newSvcInstallCmd(),
		newSvcControlCmd("uninstall", "Uninstall dlist from system service."),
		newSvcControlCmd("start", "Start the dlist system service."),
		newSvcControlCmd("stop", "Stop the dlist system service."),
		newSvcControlCmd("restart", "Restart the dlist system service."),
		newSvcStatusCmd(),
	)
	return serviceCmd
}

func newSvc() (service.Service, error) {
	svc, err := service.New(new(serverService), svcCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init service, %w", err)
	}
	return svc, nil
}

func newSvcInstallCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "install [-c config_file] [script_file]",
		Short: "Install dlist as a system service.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scriptFile string
			if len(args) > 0 {
				scriptFile = args[0]
			}
			if len(configFile) == 0 && len(scriptFile) == 0 {
				return fmt.Errorf("a config file or a script file is required")
			}
			svcArgs, err := svcArguments(configFile, scriptFile)
			if err != nil {
				return err
			}
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			svcCfg.Arguments = svcArgs
			svcCfg.WorkingDirectory = wd

			svc, err := newSvc()
			if err != nil {
				return err
			}
			return svc.Install()
		},
		SilenceUsage: true,
	}
	c.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	return c
}

func newSvcControlCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			return service.Control(svc, action)
		},
		SilenceUsage: true,
	}
}

func newSvcStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of the dlist system service.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			s, err := svc.Status()
			if err != nil {
				return err
			}
			var out string
			switch s {
			case service.StatusRunning:
				out = "running"
			case service.StatusStopped:
				out = "stopped"
			default:
				out = "unknown"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
		SilenceUsage: true,
	}
}
