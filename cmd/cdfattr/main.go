// Command cdfattr inspects attributes of CDF files.
package main

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-cdf/internal/cli"
)

func main() {
	if err := cli.New().Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
