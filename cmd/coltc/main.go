// Command coltc is the Colt compiler front-end driver.
package main

import (
	"os"

	"github.com/colt-lang/coltgo/cmd/coltc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
