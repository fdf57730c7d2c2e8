package main

import (
	"os"

	"github.com/luiz1745/jogo-de-matematica/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
