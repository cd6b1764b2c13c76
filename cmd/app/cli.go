package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCommand(logger *slog.Logger) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "cmsblog",
		Short:         "Blog front end for a headless GraphQL CMS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the .env configuration file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog and the comment relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, logger)
		},
	}

	var outDir string
	build := &cobra.Command{
		Use:   "build",
		Short: "Render every page to static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), configPath, outDir, logger)
		},
	}
	build.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")

	root.AddCommand(serve, build)
	root.RunE = serve.RunE

	return root
}

func runServe(configPath string, logger *slog.Logger) error {
	// Load the configuration
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := cfg.validate(true); err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, true)
	if err != nil {
		return err
	}
	defer app.close()

	// Initialize the consumer
	if app.mailService != nil {
		app.mailService.SendCommentNotifications()
	}

	return app.serve(cfg.Port)
}

func runBuild(ctx context.Context, configPath, outDir string, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := cfg.validate(false); err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, false)
	if err != nil {
		return err
	}
	defer app.close()

	pages, err := app.exportSite(ctx, outDir)
	if err != nil {
		return err
	}

	logger.Info("static build complete", slog.String("out", outDir), slog.Int("pages", pages))
	return nil
}
