package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/db"
	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/models"
	_ "github.com/joho/godotenv/autoload"
	_ "modernc.org/sqlite"
)

// Bulk-loads a curriculum JSON array into the sqlite lesson store,
// keyed by day. Existing records for the same day are overwritten.
func main() {
	curriculumFile := flag.String("curriculum", "Curriculam.json", "path to the curriculum JSON file")
	dbPath := flag.String("db", "lessons.db", "path to the sqlite database")
	flag.Parse()

	data, err := os.ReadFile(*curriculumFile)
	if err != nil {
		log.Fatalf("Failed to read curriculum: %v", err)
	}

	var lessons []models.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		log.Fatalf("Failed to parse curriculum: %v", err)
	}

	sqlDB, err := sql.Open("sqlite", *dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.InitSchema(sqlDB); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	queue := db.NewQueue(sqlDB)
	defer queue.Close()
	repo := db.NewLessonRepository(queue)

	for i := range lessons {
		if lessons[i].Status == "" {
			lessons[i].Status = models.StatusPending
		}
		if err := repo.Put(&lessons[i]); err != nil {
			log.Fatalf("Failed to upload day %d: %v", lessons[i].Day, err)
		}
		log.Printf("Uploaded day %d: %s", lessons[i].Day, lessons[i].Topic)
	}

	log.Printf("Upload complete: %d lessons", len(lessons))
}
