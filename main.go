package main

import (
	"os"

	"hostmerge/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
