package main

import (
	"fmt"
	"os"

	"github.com/taekwondodev/bitcoin-p2p/internal/app"
	"github.com/taekwondodev/bitcoin-p2p/internal/config"
)

func main() {
	cfg := config.LoadFromFlags()

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}
	defer a.Shutdown()

	if err := a.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
