package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"CalmBoard/internal/analysis"
	"CalmBoard/internal/analyzer"
	"CalmBoard/internal/config"
	boardnet "CalmBoard/internal/net"
	"CalmBoard/internal/ui"
)

func main() {
	if err := newRootCommand(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calmboard",
		Short:         "Draw freely and get gentle feedback on your drawing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if cfg.Verbose {
				gg.SetLogger(slog.Default())
			}
		},
		RunE: func(*cobra.Command, []string) error {
			return runBoard(cfg)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose rendering logs")
	rootCmd.Flags().StringVar(&cfg.AnalyzeURL, "analyze-url", cfg.AnalyzeURL, "Analysis endpoint (http(s):// or ws(s)://)")
	rootCmd.Flags().BoolVar(&cfg.Discover, "discover", cfg.Discover, "Find the analysis service over mDNS when no URL is set")
	rootCmd.Flags().DurationVar(&cfg.DiscoverWait, "discover-wait", cfg.DiscoverWait, "How long to browse for the analysis service")
	rootCmd.Flags().DurationVar(&cfg.AnalyzeTimeout, "timeout", cfg.AnalyzeTimeout, "Analysis request timeout (0 for none)")
	rootCmd.Flags().IntVar(&cfg.Width, "width", cfg.Width, "Initial window width")
	rootCmd.Flags().IntVar(&cfg.Height, "height", cfg.Height, "Initial window height")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the drawing analysis service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	serveCmd.Flags().BoolVar(&cfg.Advertise, "advertise", cfg.Advertise, "Announce the service over mDNS")

	rootCmd.AddCommand(serveCmd)
	return rootCmd
}

// resolveEndpoint picks the analysis URL: explicit configuration first, then
// mDNS discovery, then the local default.
func resolveEndpoint(cfg *config.Config) string {
	if cfg.AnalyzeURL != "" {
		return cfg.AnalyzeURL
	}
	if cfg.Discover {
		u, err := boardnet.Discover(cfg.DiscoverWait)
		if err == nil {
			return u
		}
		log.Printf("[MAIN] Discovery failed: %v", err)
	}
	return config.DefaultAnalyzeURL
}

func runBoard(cfg *config.Config) error {
	log.Println("Starting CalmBoard")
	endpoint := resolveEndpoint(cfg)
	client, err := analysis.New(endpoint, analysis.WithTimeout(cfg.AnalyzeTimeout))
	if err != nil {
		return err
	}
	log.Printf("[MAIN] Using analysis service at %s", client.Endpoint())
	return ui.RunApp(cfg, client, client.Endpoint())
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Advertise {
		port, err := listenPort(cfg.Addr)
		if err != nil {
			return err
		}
		server, err := boardnet.Advertise(port, "/analyze")
		if err != nil {
			log.Printf("[MAIN] mDNS advertise failed: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	log.Printf("[MAIN] Analysis service listening on %s (LAN address %s)", cfg.Addr, boardnet.OutgoingIP())
	return analyzer.NewServer(analyzer.New(nil)).ListenAndServe(ctx, cfg.Addr)
}

func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("cannot advertise listen address %q without a fixed port", addr)
	}
	return port, nil
}
