// gentilesets writes the placeholder asset set: one transition sheet per
// biome pair plus the object atlas and its JSON config.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/guyz/mapbuilder/placeholders"
)

func main() {
	outDir := flag.String("out", "assets", "directory to write the placeholder assets into")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gentilesets"})

	if err := placeholders.GenerateAndSave(*outDir); err != nil {
		logger.Fatal("Failed to generate placeholder assets", "error", err)
	}
	logger.Info("Placeholder assets ready", "dir", *outDir)
}
