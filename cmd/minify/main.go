package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"upsidedown/internal/assets"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js or html); guessed from the input name when empty")
		outDir     = flag.String("dist", "", "Minify templates/ and static/ into this directory instead of a single file")
	)
	flag.Parse()

	m := assets.NewMinifier()

	if *outDir != "" {
		results, err := assets.Tree(m, *outDir, "templates", "static")
		if err != nil {
			log.Fatalf("Failed to minify assets: %v", err)
		}
		fmt.Printf("Minified %d files into %s\n", len(results), *outDir)
		return
	}

	if *inputFile == "" || *outputFile == "" {
		log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> [-type=<css|js|html>] | -dist=<dir>")
	}

	mediaType := assets.MediaType(*inputFile)
	switch strings.ToLower(*fileType) {
	case "":
	case "css":
		mediaType = assets.MediaCSS
	case "js":
		mediaType = assets.MediaJS
	case "html":
		mediaType = assets.MediaHTML
	default:
		log.Fatalf("Unsupported file type: %s (supported: css, js, html)", *fileType)
	}
	if mediaType == "" {
		log.Fatalf("Cannot guess the type of %s, pass -type", *inputFile)
	}

	res, err := assets.File(m, *inputFile, *outputFile, mediaType)
	if err != nil {
		log.Fatalf("Failed to minify %s: %v", *inputFile, err)
	}
	fmt.Printf("Successfully minified %s -> %s (%.1f%% smaller)\n", res.Src, res.Dst, res.Reduction())
}
