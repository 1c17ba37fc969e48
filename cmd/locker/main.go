// Command locker is a terminal browser for the game cosmetics catalog.
//
// Usage:
//
//	locker                  Browse the catalog (TUI)
//	locker search <query>   Print matching items
//	locker random           Pick a random item
//	locker history          List recent searches
//	locker history clear    Forget recent searches
//	locker config           Print the effective configuration
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "locker:", err)
		os.Exit(1)
	}
}
