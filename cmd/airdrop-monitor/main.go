package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		if errors.Is(err, domain.ErrConfiguration) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
