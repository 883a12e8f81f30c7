package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jlym/postboard/go/internal/httpapi"
)

func main() {
	if err := loadDotEnv(); err != nil {
		log.Printf("loading .env failed: %+v\n", err)
	}

	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}

// loadDotEnv loads filenames (".env" when none are given) into the process
// environment. A missing file is not an error.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.WithStack(err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "In-memory users and posts JSON API",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newRoutesCmd(),
	)
	return rootCmd
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the available endpoints",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, line := range httpapi.Endpoints() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}
