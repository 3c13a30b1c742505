package main

import (
	"os"

	"github.com/vibedit/vibedit-orders-service/cmd/orders/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
