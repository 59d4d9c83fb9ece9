// Command gradebook is the command-line front end of the school records
// store.
package main

import "github.com/mesh-intelligence/gradebook/internal/cli"

func main() {
	cli.Execute()
}
