package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"toybrowser/pkg/browser"
	"toybrowser/pkg/config"
	"toybrowser/pkg/observability"
	"toybrowser/pkg/resource"
	stdnet "toybrowser/std/net"
)

// globalOptions is shared by every subcommand.
type globalOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "toybrowser",
		Short:         "A tiny web browser: fetch, parse, style, lay out and paint a page.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (YAML)")
	flags.Int("width", 800, "viewport width in pixels")
	flags.Int("height", 600, "viewport height in pixels")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console or json)")
	_ = opts.v.BindPFlag("viewport.width", flags.Lookup("width"))
	_ = opts.v.BindPFlag("viewport.height", flags.Lookup("height"))
	_ = opts.v.BindPFlag("logger.level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("logger.format", flags.Lookup("log-format"))

	root.AddCommand(
		newRenderCmd(opts),
		newTreeCmd(opts),
		newRulesCmd(opts),
		newBoxesCmd(opts),
		newShowCmd(opts),
		newOpenCmd(opts),
	)
	return root
}

func (o *globalOptions) initialize() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	return nil
}

func (o *globalOptions) logger() *zap.Logger {
	return observability.GetLogger()
}

func (o *globalOptions) newFetcher() *resource.DefaultFetcher {
	return resource.NewFetcher("",
		resource.WithClient(stdnet.NewClient(o.cfg.Network.Timeout)),
		resource.WithLogger(o.logger().Named("fetch")))
}

func (o *globalOptions) newBrowser() *browser.Browser {
	return browser.New(o.cfg,
		browser.WithFetcher(o.newFetcher()),
		browser.WithLogger(o.logger().Named("browser")))
}
