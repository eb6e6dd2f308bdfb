package main

import (
	"fmt"
	"os"

	"github.com/HexmosTech/curlform"
)

func main() {
	if err := curlform.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
