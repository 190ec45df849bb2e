//go:build ignore

package main

import (
	"fmt"
	"log"

	"upsidedown/internal/assets"
)

func main() {
	results, err := assets.Tree(assets.NewMinifier(), "dist", "templates", "static")
	if err != nil {
		log.Fatal("Error minifying assets: ", err)
	}
	for _, r := range results {
		fmt.Printf("📦 %s: %d bytes → %d bytes (%.1f%% reduction)\n",
			r.Src, r.OriginalSize, r.MinifiedSize, r.Reduction())
	}
	fmt.Println("✅ Minification complete!")
	fmt.Println("📁 Minified files are in the 'dist' directory")
}
