// Command soledemo exercises several holder compositions with the demo
// payloads and prints what each instance does. Run it with:
//
//	go run ./cmd/soledemo run
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
