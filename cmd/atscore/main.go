// Command atscore scores CV files from the command line.
//
//	atscore analyze cvs/**/*.pdf --job advert.html --format json
//	atscore profiles
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
