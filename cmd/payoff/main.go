// Command payoff runs the debt payoff simulator against a local TOML file,
// without a database or the HTTP API.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
