package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"faceserver/internal/model"
	"faceserver/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "faceserver.db"), "Database path")
	name := flag.String("name", "", "Display name of the person")
	images := flag.String("images", "", "Comma-separated reference image paths")
	flag.Parse()

	if *name == "" || *images == "" {
		flag.Usage()
		os.Exit(1)
	}

	var paths []string
	for _, p := range strings.Split(*images, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		log.Fatalf("No usable image paths in %q", *images)
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			log.Printf("⚠️  Warning: cannot stat %s: %v", p, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewEnrollmentRepository(db)
	id, err := repo.Insert(&model.Enrollment{Name: *name, ImagePaths: paths})
	if err != nil {
		log.Fatalf("Failed to insert enrollment: %v", err)
	}

	fmt.Printf("Enrolled %s (id %d) with %d reference image(s)\n", *name, id, len(paths))
	fmt.Println("Restart the server to rebuild the gallery.")
}
