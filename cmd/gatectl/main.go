package main

import (
	"os"

	"parkgate/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
