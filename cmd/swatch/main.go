// Swatch - dominant colour palettes for images
//
// Swatch extracts the dominant colours of an image and renders them as a
// palette swatch saved alongside the source.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
