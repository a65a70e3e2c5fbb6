// Command pagelens annotates a PostgreSQL relation segment file for the
// wxHexEditor tag viewer.
//
//	pagelens [-start N] [-end M] [-k] [-l] [-b size] [-s size] [-n seg] <file> > file.tags
//	pagelens -serve :8080 <file>
package main

import (
	"os"

	"PageLens/bootstrap"
)

func main() {
	os.Exit(bootstrap.Run(os.Args[1:], bootstrap.Streams{Stdout: os.Stdout, Stderr: os.Stderr}))
}
