package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yt-insights/channel-explorer/internal/api"
	"github.com/yt-insights/channel-explorer/internal/config"
	"google.golang.org/api/option"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found")
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "ytexplorer",
		Short:        "YouTube channel explorer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd)
		},
	}
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := setup(cmd.Context(), v)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				log.Warn().Err(err).Msg("Requests will fail until the API key is set")
			}

			server := api.NewServer(client, cfg.AllowedOrigins)
			log.Info().Str("port", cfg.Port).Msg("Server starting")
			if err := server.Start(cfg.Port); err != nil {
				log.Error().Err(err).Msg("Failed to start server")
				return err
			}
			return nil
		},
	}
	serve.Flags().String("port", "", "port to listen on")

	fetch := &cobra.Command{
		Use:   "fetch <channel-id|@handle|url>",
		Short: "Print the aggregate view of a channel as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, client, err := setup(ctx, v)
			if err != nil {
				return err
			}

			input := args[0]
			if strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be") {
				if input, err = api.ExtractChannelFromURL(input); err != nil {
					return err
				}
			}

			channelID, err := client.Resolve(ctx, input)
			if err != nil {
				return fail(err)
			}
			view, err := client.Aggregate(ctx, channelID)
			if err != nil {
				return fail(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}

	root.AddCommand(serve, fetch)
	return root
}

// flagKeys maps config keys to the flags that override them
var flagKeys = map[string]string{
	config.EnvLogLevel: "log-level",
	config.EnvPort:     "port",
}

// bindFlags binds the flags cmd defines to their config keys
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func setup(ctx context.Context, v *viper.Viper) (*config.Config, *api.YouTubeClient, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return nil, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var opts []option.ClientOption
	if cfg.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.APIEndpoint))
	}
	client, err := api.NewYouTubeClient(ctx, cfg.Credentials(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize YouTube API")
		return nil, nil, err
	}
	return cfg, client, nil
}

func fail(err error) error {
	log.Error().Err(err).Int("status", api.StatusCode(err)).Msg("Fetch failed")
	return fmt.Errorf("fetch failed: %w", err)
}
