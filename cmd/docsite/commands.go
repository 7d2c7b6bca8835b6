package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jigarkkarangiya/docs/internal/build"
	"github.com/jigarkkarangiya/docs/internal/devserver"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
)

func newBuildCmd(a *app) *cobra.Command {
	var outDir, siteDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := build.New(a.builderOptions(nil))
			if err != nil {
				return err
			}
			res, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages into %s (%d written, %d unchanged, %d removed) in %s\n",
				res.Pages, a.cfg.OutDir, res.Written, res.Skipped, res.Removed, res.Duration.Round(time.Millisecond))
			printBroken(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default is build)")
	cmd.Flags().StringVar(&siteDir, "site", "", "site source directory (default is site)")
	a.bind(cmd, "out", "outDir", func() any { return outDir })
	a.bind(cmd, "site", "siteDir", func() any { return siteDir })
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var (
		host         string
		port         int
		noLiveReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site locally and rebuild on changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := metrics.New("docsite")
			opts := a.builderOptions(m)

			b, err := build.New(opts)
			if err != nil {
				return err
			}

			srv, err := devserver.New(devserver.Config{
				Addr:            a.cfg.Serve.Addr(),
				SiteDir:         opts.SiteDir,
				OutDir:          opts.OutDir,
				BaseURL:         opts.Site.BaseURL,
				Builder:         b,
				LiveReload:      a.cfg.Serve.LiveReload,
				Debounce:        a.cfg.Serve.Debounce,
				MaxClientsPerIP: a.cfg.Serve.MaxClientsPerIP,
				Version:         version,
				Logger:          a.logger,
				Metrics:         m,
			})
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "host to listen on")
	cmd.Flags().IntVar(&port, "port", 3000, "port to listen on")
	cmd.Flags().BoolVar(&noLiveReload, "no-live-reload", false, "disable live reload")
	a.bind(cmd, "host", "serve.host", func() any { return host })
	a.bind(cmd, "port", "serve.port", func() any { return port })
	a.bind(cmd, "no-live-reload", "serve.liveReload", func() any { return !noLiveReload })
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var siteDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Render the site in memory and report broken links",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.builderOptions(nil)
			opts.DryRun = true

			b, err := build.New(opts)
			if err != nil {
				return err
			}
			res, err := b.Build(cmd.Context())
			printBroken(cmd.OutOrStdout(), res)
			for _, is := range res.A11yIssues {
				fmt.Fprintf(cmd.OutOrStdout(), "accessibility: %s\n", is)
			}
			if err != nil {
				return err
			}

			if n := len(res.BrokenLinks) + len(res.BrokenAnchors); n > 0 {
				return fmt.Errorf("%w: %d found", build.ErrBrokenLinks, n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d pages, no broken links\n", res.Pages)
			return nil
		},
	}

	cmd.Flags().StringVar(&siteDir, "site", "", "site source directory (default is site)")
	a.bind(cmd, "site", "siteDir", func() any { return siteDir })
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// No configuration needed.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docsite v%s\n", version)
		},
	}
}

func printBroken(w io.Writer, res build.Result) {
	for _, b := range res.BrokenLinks {
		fmt.Fprintf(w, "broken link: %s\n", b)
	}
	for _, b := range res.BrokenAnchors {
		fmt.Fprintf(w, "broken anchor: %s\n", b)
	}
}
