// migrate applies the embedded schema migrations to DATABASE_URL.
package main

import (
	"flag"
	"fmt"
	"os"

	"amparo/internal/platform/config"
	"amparo/internal/platform/postgres"
)

func main() {
	direction := flag.String("direction", postgres.Up, "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(cfg.DatabaseURL, *direction); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
	fmt.Printf("migrations %s: done\n", *direction)
}
