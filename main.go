package main

import (
	"os"

	"github.com/openhexa/openhexa-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
