package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/chemlab-mcp/internal/catalog"
	"github.com/dshills/chemlab-mcp/internal/mcp"
	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/internal/remote"
	"github.com/dshills/chemlab-mcp/internal/storage"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// stdout is reserved for the MCP protocol
	log.SetOutput(os.Stderr)

	rootCmd := &cobra.Command{
		Use:   "chemlab",
		Short: "Virtual chemistry lab",
		Long: `Chemlab stages elements, matches them against a table of known
reactions and records every experiment.

It can run as:
  - an MCP server on stdio for AI assistants (serve)
  - an HTTP reaction lookup service for other chemlab instances (api)
  - a one-shot command line matcher (match, elements)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("Chemlab MCP Server\nVersion: %s\nBuild Time: %s\nBuild Mode: %s\nSQLite Driver: %s\n",
		version, buildTime, storage.BuildMode, storage.DriverName))

	// Add subcommands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(apiCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(elementsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var (
		dbPath    string
		delay     time.Duration
		remoteURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if delay < 0 {
				return fmt.Errorf("--delay must be a non-negative duration, got %s", delay)
			}
			cfg, err := mcp.ConfigFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("delay") {
				cfg.ExperimentDelay = delay
			}
			if cmd.Flags().Changed("remote") {
				cfg.RemoteURL = remoteURL
			}

			log.Printf("Chemlab MCP Server v%s starting...", version)
			log.Printf("Build Mode: %s, Driver: %s, Archive: %s", storage.BuildMode, storage.DriverName, cfg.DBPath)

			server, err := mcp.NewServer(cfg)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Start server in a goroutine
			errChan := make(chan error, 1)
			go func() {
				log.Println("MCP server ready, listening on stdio...")
				errChan <- server.Serve(ctx)
			}()

			// Wait for shutdown signal or error
			select {
			case <-ctx.Done():
				log.Printf("Received %v, shutting down gracefully...", context.Cause(ctx))
				_ = server.Close()
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			}

			log.Println("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", storage.MemoryDSN, "experiment archive path (overrides "+mcp.EnvDBPath+")")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "simulated experiment duration (overrides "+mcp.EnvExperimentDelay+")")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "remote lookup base URL (overrides "+mcp.EnvRemoteURL+")")
	return cmd
}

func apiCmd() *cobra.Command {
	var (
		addr            string
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the reaction lookup endpoint over HTTP",
		Long:  "Serve POST " + remote.FindPath + " backed by the built-in reaction table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:              addr,
				Handler:           remote.NewHandler(reaction.Default()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Printf("Reaction lookup listening on %s", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Println("Shutting down reaction lookup...")
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
	return cmd
}

func matchCmd() *cobra.Command {
	var useRemote bool

	cmd := &cobra.Command{
		Use:   "match <symbol>...",
		Short: "Match elements against the reaction table",
		Example: `  chemlab match Na Cl
  chemlab match --remote H O`,
		Args: cobra.RangeArgs(1, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			symbols := make([]string, len(args))
			for i, arg := range args {
				el, err := cat.Lookup(arg)
				if err != nil {
					return err
				}
				symbols[i] = el.Symbol
			}

			var result types.MatchResult
			if useRemote {
				client, err := remote.NewFromEnv()
				if err != nil {
					return err
				}
				result = client.FindReaction(cmd.Context(), symbols)
			} else {
				result = reaction.Default().Match(symbols)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Summary())
			if !result.Found() {
				return nil
			}

			r := result.Reaction
			fmt.Fprintf(out, "  Balanced:   %s\n", r.BalancedEquation)
			fmt.Fprintf(out, "  Type:       %s (%s)\n", r.Type, r.Energy)
			fmt.Fprintf(out, "  Products:   %s\n", strings.Join(r.Products, ", "))
			fmt.Fprintf(out, "  Conditions: %s\n", strings.Join(reaction.Conditions(*r), "; "))
			if r.Description != "" {
				fmt.Fprintf(out, "  %s\n", r.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useRemote, "remote", false, "look the reaction up on "+remote.EnvRemoteURL)
	return cmd
}

func elementsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the element catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter catalog.Filter
			if category != "" {
				c, err := types.ParseCategory(category)
				if err != nil {
					return err
				}
				filter.Category = c
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NO\tSYMBOL\tNAME\tMASS\tCATEGORY")
			for _, el := range catalog.Default().List(filter) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					el.AtomicNumber, el.Symbol, el.Name, catalog.FormatAtomicMass(el.AtomicMass), el.Category)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list one category (e.g. halogen)")
	return cmd
}
