// Command luxedir manages and serves a schema-driven directory of listings.
package main

import "github.com/mesh-intelligence/luxedir/internal/cli"

func main() {
	cli.Execute()
}
