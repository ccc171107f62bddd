package main

import (
	"fmt"
	"os"
)

// coder is implemented by errors that carry a specific process exit
// code, such as a scan that found blocking secrets.
type coder interface {
	ExitCode() int
}

func main() {
	err := Execute()
	if err == nil {
		return
	}
	if c, ok := err.(coder); ok {
		os.Exit(c.ExitCode())
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
