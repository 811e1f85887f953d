// Package main provides a tool to seed the database with sample data.
//
// This creates a handful of albums and photo records for exercising the
// API and gallery features without uploading real files.
//
// Usage:
//
//	DB_PATH=~/photovault/db go run ./cmd/seed
//	DB_PATH=~/photovault/db go run ./cmd/seed --photos 50
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/id"
	"github.com/photovault/photovault-server/internal/store"
)

var photoCount = flag.Int("photos", 20, "Number of photo records to create")

var photoNames = []string{
	"Sunset over the bay", "Morning fog", "City lights", "Mountain trail",
	"Beach day", "Old town square", "Forest walk", "Harbor at dusk",
	"Rooftop view", "Autumn leaves", "Winter garden", "Street market",
}

var albumSeeds = []struct {
	name        string
	description string
}{
	{"Travel", "Photos from trips"},
	{"Family", "Family gatherings and holidays"},
	{"Nature", "Landscapes and wildlife"},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/photovault/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	albumIDs := make([]string, 0, len(albumSeeds))
	for _, seed := range albumSeeds {
		albumID, err := id.Generate("album")
		if err != nil {
			log.Fatalf("Failed to generate album id: %v", err)
		}

		album := &domain.Album{
			Entity:      domain.Entity{ID: albumID},
			Name:        seed.name,
			Description: seed.description,
		}
		if err := s.CreateAlbum(ctx, album); err != nil {
			log.Fatalf("Failed to create album %q: %v", seed.name, err)
		}
		albumIDs = append(albumIDs, albumID)
		fmt.Printf("Created album %q (%s)\n", seed.name, albumID)
	}

	for i := 0; i < *photoCount; i++ {
		photoID, err := id.Generate("photo")
		if err != nil {
			log.Fatalf("Failed to generate photo id: %v", err)
		}

		name := fmt.Sprintf("%s %d", photoNames[rng.Intn(len(photoNames))], i+1)
		uploadedAt := time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

		photo := &domain.Photo{
			Entity:      domain.Entity{ID: photoID},
			Name:        name,
			Filename:    fmt.Sprintf("IMG_%04d.jpg", rng.Intn(10000)),
			ContentType: "image/jpeg",
			Size:        int64(rng.Intn(8<<20) + 100<<10),
			Width:       4032,
			Height:      3024,
			UploadedAt:  uploadedAt,
		}

		// Roughly two thirds of photos land in an album.
		if rng.Intn(3) != 0 {
			photo.AlbumIDs = []string{albumIDs[rng.Intn(len(albumIDs))]}
		}

		if err := s.CreatePhoto(ctx, photo); err != nil {
			log.Fatalf("Failed to create photo %q: %v", name, err)
		}
	}

	fmt.Printf("Created %d photo records across %d albums\n", *photoCount, len(albumIDs))
}
