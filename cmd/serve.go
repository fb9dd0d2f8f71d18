package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"erd-builder/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser, layout and export API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.NewServer(server.Config{
			Addr:        viper.GetString("server.addr"),
			CORSOrigins: viper.GetStringSlice("server.cors_origins"),
		})

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server listening on %s\n", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("http server error: %w", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		log.Println("Shutting down server gracefully ...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Println("Server Shutdown:", err)
		}
		log.Println("Server exiting")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins for the editor")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))
}
