package main

import (
	"github.com/spf13/cobra"

	"github.com/jigarkkarangiya/docs/internal/build"
	"github.com/jigarkkarangiya/docs/internal/config"
	"github.com/jigarkkarangiya/docs/internal/website"
	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfgFile string

	cfg    config.Config
	logger logging.Logger

	bindings map[*cobra.Command][]binding
}

// binding maps a command-line flag to a config key.
type binding struct {
	flag, key string
	value     func() any
}

// bind makes flag of cmd override key when it is set.
func (a *app) bind(cmd *cobra.Command, flag, key string, value func() any) {
	a.bindings[cmd] = append(a.bindings[cmd], binding{flag: flag, key: key, value: value})
}

// overrides collects the bound flags set on cmd and the root command.
func (a *app) overrides(root, cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	for _, c := range []*cobra.Command{root, cmd} {
		for _, b := range a.bindings[c] {
			if cmd.Flags().Changed(b.flag) {
				out[b.key] = b.value()
			}
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	a := &app{bindings: make(map[*cobra.Command][]binding)}

	cmd := &cobra.Command{
		Use:           "docsite",
		Short:         "Build and serve the Magento 2 modules documentation",
		Long:          `docsite renders the documentation, blog and landing page of Jigar Karangiya's Magento 2 modules into a static site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var logLevel, logFormat string
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./docsite.yaml)")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	a.bind(cmd, "log-level", "log.level", func() any { return logLevel })
	a.bind(cmd, "log-format", "log.format", func() any { return logFormat })

	root := cmd
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Options{File: a.cfgFile, Overrides: a.overrides(root, cmd)})
		if err != nil {
			return err
		}
		logger, err := logging.FromConfig(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger = logger
		return nil
	}

	cmd.AddCommand(
		newBuildCmd(a),
		newServeCmd(a),
		newCheckCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// builderOptions maps the loaded configuration to build options.
func (a *app) builderOptions(m *metrics.Metrics) build.Options {
	return build.Options{
		Site:         a.cfg.Apply(website.DefaultSiteConfig()),
		SiteDir:      a.cfg.SiteDir,
		OutDir:       a.cfg.OutDir,
		CacheDir:     a.cfg.CacheDir,
		Ignore:       a.cfg.Ignore,
		PrettyHTML:   a.cfg.PrettyHTML,
		Compress:     a.cfg.Compress,
		Concurrency:  a.cfg.Concurrency,
		OnA11yIssues: a.cfg.OnA11yIssues,
		Logger:       a.logger,
		Metrics:      m,
	}
}
