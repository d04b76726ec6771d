package main

import (
	"os"

	"github.com/quintile-data/edive/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
