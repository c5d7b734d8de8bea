package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// checkimages decodes every PNG in a directory and reports the ones that
// fail, so broken reference images are caught before the gallery load
// silently skips them.
func main() {
	dir := flag.String("dir", "user_images", "Directory containing reference images")
	flag.Parse()

	files, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read directory %s: %v", *dir, err)
	}

	checked := 0
	broken := 0
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".png") {
			continue
		}
		checked++

		path := filepath.Join(*dir, file.Name())
		mat := gocv.IMRead(path, gocv.IMReadColor)
		if mat.Empty() {
			fmt.Printf("❌ %s: failed to decode\n", path)
			broken++
			continue
		}
		mat.Close()
		fmt.Printf("✅ %s: ok\n", path)
	}

	fmt.Printf("Checked %d PNG file(s), %d broken\n", checked, broken)
	if broken > 0 {
		os.Exit(1)
	}
}
