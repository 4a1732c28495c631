package main

import (
	"os"

	"github.com/theMomax/weathersim/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
