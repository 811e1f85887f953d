package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/photovault/photovault-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/photovault/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	photoCount := 0
	photosWithThumbnails := 0
	photosWithBlurHash := 0
	orphanPhotos := 0
	var totalBytes int64
	membership := make(map[string]int)

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("photo:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var photo domain.Photo
				if err := json.Unmarshal(val, &photo); err != nil {
					return err
				}

				photoCount++
				totalBytes += photo.Size
				if photo.ThumbnailURL != "" {
					photosWithThumbnails++
				}
				if photo.BlurHash != "" {
					photosWithBlurHash++
				}
				if len(photo.AlbumIDs) == 0 {
					orphanPhotos++
				}
				for _, albumID := range photo.AlbumIDs {
					membership[albumID]++
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading photo %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating photos: %v", err)
	}

	albumCount := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("album:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var album domain.Album
				if err := json.Unmarshal(val, &album); err != nil {
					return err
				}

				albumCount++
				fmt.Printf("Album: %s\n", album.DisplayName())
				fmt.Printf("  ID: %s\n", album.ID)
				fmt.Printf("  Photos: %d\n", membership[album.ID])
				if album.CoverPhotoID != "" {
					fmt.Printf("  Cover: %s\n", album.CoverPhotoID)
				}
				fmt.Println()

				return nil
			})
			if err != nil {
				log.Printf("Error reading album %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating albums: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total photos: %d\n", photoCount)
	fmt.Printf("Photos with thumbnails: %d\n", photosWithThumbnails)
	fmt.Printf("Photos with blurhash: %d\n", photosWithBlurHash)
	fmt.Printf("Photos in no album: %d\n", orphanPhotos)
	fmt.Printf("Total albums: %d\n", albumCount)
	fmt.Printf("Total media bytes: %d\n", totalBytes)
	if photoCount > 0 {
		fmt.Printf("Average photo size: %.1f KB\n", float64(totalBytes)/float64(photoCount)/1024)
	}
}
