// Command apidocs serves and prints the documentation of an API declared
// in a YAML configuration file.
package main

import (
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
