package main

import (
	"fmt"
	"os"

	"github.com/jmcomets/fd/pkg/style"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		os.Exit(1)
	}
}
