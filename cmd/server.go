package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/marsdash/internal/activity"
	"github.com/ziadkadry99/marsdash/internal/config"
	"github.com/ziadkadry99/marsdash/internal/dashboard"
	"github.com/ziadkadry99/marsdash/internal/db"
	"github.com/ziadkadry99/marsdash/internal/fetcher"
	"github.com/ziadkadry99/marsdash/internal/logging"
	"github.com/ziadkadry99/marsdash/internal/server"
	"github.com/ziadkadry99/marsdash/internal/view"
)

var (
	serverPort int
	retainDays int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the rover dashboard server",
	Long:  `Starts the marsdash HTTP server with the live dashboard, the fetch activity API and a health check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		client, err := newFetcherFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating fetcher: %w", err)
		}

		footer, err := view.FooterFromMarkdown(cfg.FooterMarkdown)
		if err != nil {
			return err
		}

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "marsdash.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, database, logging.Log)

		activityStore := activity.NewStore(srv.Database())
		if retainDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -retainDays)
			n, err := activityStore.DeleteBefore(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			logging.Log.WithField("deleted", n).Debug("pruned fetch activity")
		}

		registerAllRoutes(srv, cfg, client, activityStore, view.Options{Title: cfg.Title, Footer: footer})

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logging.Log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logging.Log.WithFields(logrus.Fields{
			"version":  Version,
			"port":     cfg.Port,
			"backend":  cfg.BackendURL,
			"rovers":   cfg.Rovers,
			"database": dbPath,
		}).Info("marsdash server starting")

		return srv.Start()
	},
}

// registerAllRoutes wires up the dashboard and activity routes.
func registerAllRoutes(srv *server.Server, cfg *config.Config, f fetcher.Fetcher, activityStore *activity.Store, viewOpts view.Options) {
	r := srv.Router()

	// Fetch activity log
	activity.RegisterRoutes(r, activityStore)

	// Dashboard (live view)
	dash := dashboard.New(dashboard.Options{
		Rovers:   cfg.Rovers,
		View:     viewOpts,
		Fetcher:  f,
		Activity: activityStore,
		Logger:   logging.Log,
	})
	dash.RegisterRoutes(r)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 3000, "Port to listen on (overrides config)")
	serverCmd.Flags().IntVar(&retainDays, "retain-days", 30, "Delete fetch activity older than this many days at startup (0 keeps everything)")
	rootCmd.AddCommand(serverCmd)
}
