package main

import (
	"fmt"
	nethttp "net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/entity12208/macroforge"
	"github.com/entity12208/macroforge/internal/cli"
	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/internal/presentation/tui"
	httpadapter "github.com/entity12208/macroforge/pkg/adapters/http"
	"github.com/entity12208/macroforge/pkg/adapters/memory"
	redisadapter "github.com/entity12208/macroforge/pkg/adapters/redis"
	"github.com/entity12208/macroforge/pkg/observability"
	"github.com/entity12208/macroforge/pkg/ports"
	"github.com/entity12208/macroforge/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Long: `Starts an HTTP API that solves levels from a directory on request and
serves the exported artifacts. Artifacts live in memory unless a Redis
address is given; with Redis, replicas also share a per-level search lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(logLevel))

		addr, _ := cmd.Flags().GetString("addr")
		levelsDir, _ := cmd.Flags().GetString("levels")
		redisAddr, _ := cmd.Flags().GetString("redis")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		var store ports.ArtifactStore
		var locker ports.DistributedLocker
		if redisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: redisAddr})
			store = redisadapter.NewFromClient(client)
			locker = redisadapter.NewLocker(client, "macroforge:")
		} else {
			store = memory.NewStore()
		}

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)

		registry := session.NewRegistry(func(level string) (*macroforge.Coordinator, error) {
			// Level identities come from request URLs; keep them inside the
			// levels directory.
			if strings.ContainsAny(level, `/\`) || strings.Contains(level, "..") {
				return nil, fmt.Errorf("invalid level name %q", level)
			}
			opts := cli.SolverOptions{Timeout: timeout}
			coord, _, err := cli.NewCoordinator(
				filepath.Join(levelsDir, level+".yaml"),
				opts,
				logger,
				macroforge.WithArtifactStore(store),
				macroforge.WithMetrics(metrics),
			)
			return coord, err
		}, session.WithLogger(logger))

		handler := httpadapter.NewHandler(httpadapter.Config{
			Registry: registry,
			Store:    store,
			Locker:   locker,
			Prom:     reg,
			Logger:   logger,
		})

		tui.PrintBanner()
		fmt.Printf("Serving solver API on %s (levels from %s)\n", addr, levelsDir)
		return nethttp.ListenAndServe(addr, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("levels", "levels", "Directory containing level files")
	serveCmd.Flags().String("redis", "", "Redis address for shared artifacts and locking")
	serveCmd.Flags().Duration("timeout", 40*time.Second, "Wall-clock search budget per request")
}
