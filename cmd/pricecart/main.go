package main

import (
	"io"
	"log"
	"os"
)

func main() {
	// [CATALOG] lines would interleave with the report
	log.SetOutput(io.Discard)

	os.Exit(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
