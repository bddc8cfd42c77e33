package main

import (
	"os"

	"github.com/xsx123123/snakemake-executor-donau/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
