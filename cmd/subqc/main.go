package main

import (
	"os"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
