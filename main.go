package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"CarFigures/bot"
	"CarFigures/commands"
	"CarFigures/commands/help"
	"CarFigures/commands/info"
	"CarFigures/metrics"
	"CarFigures/settings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.WithField("prefix", "main")

var (
	configPath string
	guildID    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "carfigures",
	Short: "CarFigures Discord bot",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if f := cmd.Flag("config"); f != nil && !f.Changed {
			if v := os.Getenv("CARFIGURES_CONFIG"); v != "" {
				configPath = v
			}
		}
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load(configPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: configuration OK\n", configPath)
		fmt.Fprintf(out, "  bot name:    %s\n", cfg.BotName)
		fmt.Fprintf(out, "  info group:  /%s\n", cfg.InfoGroupName)
		fmt.Fprintf(out, "  embed color: #%06X\n", cfg.DefaultEmbedColor)
		if cfg.PrometheusEnabled {
			fmt.Fprintf(out, "  prometheus:  %s:%d\n", cfg.PrometheusHost, cfg.PrometheusPort)
		}
		return nil
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command list as shown by the info commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load(configPath)
		if err != nil {
			return err
		}
		reg := commands.NewRegistry()
		m := info.Setup(reg, commands.NewPaginationManager(time.Minute), cfg)
		help.Setup(reg, cfg.DefaultEmbedColor)

		pages, err := m.CommandListPages()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, page := range pages {
			fmt.Fprintf(out, "== %s (%s)\n", page.Title, page.Footer.Text)
			for _, field := range page.Fields {
				fmt.Fprintf(out, "%s\n%s\n\n", field.Name, strings.ReplaceAll(field.Value, "\u200b", ""))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML configuration file (or $CARFIGURES_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().StringVar(&guildID, "guild", "", "register commands in a single guild instead of globally")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(commandsCmd)
}

func run() error {
	cfg, err := settings.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("Could not load settings")
	}

	token := cfg.BotToken
	if v := os.Getenv("CARFIGURES_TOKEN"); v != "" {
		token = v
	}

	b, err := bot.NewBot(cfg, token, os.Getenv("DATABASE_URL"))
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.WithError(err).Error("Could not shut down cleanly")
		}
	}()

	reg := commands.NewRegistry()
	pages := commands.NewPaginationManager(5 * time.Minute)
	info.Setup(reg, pages, cfg)
	help.Setup(reg, cfg.DefaultEmbedColor)
	reg.RegisterComponent(commands.PageComponentPrefix, pages.HandlePagination)
	b.AddHandler(reg.HandleInteraction(b))

	if cfg.PrometheusEnabled {
		svc := metrics.NewService(cfg.PrometheusHost, cfg.PrometheusPort)
		svc.Start()
		defer func() {
			if err := svc.Stop(); err != nil {
				log.WithError(err).Error("Could not stop metrics server")
			}
		}()
	}

	if err := b.Open(); err != nil {
		return err
	}
	if err := reg.SyncCommands(b.Client, guildID); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go pages.Run(ctx, time.Minute)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reg.PruneCooldowns()
			}
		}
	}()

	log.WithField("bot", cfg.BotName).Info("Bot is running. Press Ctrl+C to exit.")
	<-ctx.Done()
	log.Info("Shutting down")
	return nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
