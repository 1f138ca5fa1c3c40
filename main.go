package main

import (
	"os"

	"github.com/gasgrid/lcv-dispatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
