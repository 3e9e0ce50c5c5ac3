package main

import (
	"os"

	"bennypowers.dev/i18n-extract/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
