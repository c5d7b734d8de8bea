package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"faceserver/internal/model"
	"faceserver/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "faceserver.db"), "Database path")
	username := flag.String("username", "", "Login username")
	password := flag.String("password", "", "Login password")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewCredentialRepository(db)
	id, err := repo.Insert(&model.Credential{
		Username: *username,
		Password: *password,
		// Session token starts empty; the first login fills it.
	})
	if err != nil {
		log.Fatalf("Failed to insert credential: %v", err)
	}

	fmt.Printf("Inserted credential with id %d\n", id)
}
