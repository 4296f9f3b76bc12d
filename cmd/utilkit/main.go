// Command utilkit runs single KeyValueAccess and REST operations against the
// configured Redis shards and HTTP service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "utilkit:", err)
		os.Exit(1)
	}
}
