// Command prism is the Prism project CLI.
package main

import (
	"os"

	"github.com/go-prism/prism/cmd/prism/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
