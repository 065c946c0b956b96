// Command product_service runs the products REST API and manages its database schema.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/productsvc/pkg/config/configloader"
	"github.com/spf13/cobra"
)

const telemetryServiceName = "product-service"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "product_service",
	Short:         "Products REST API service",
	Long:          "Serves the products REST API over HTTP together with gRPC health checks.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", configloader.DefaultConfigFile, "path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}
