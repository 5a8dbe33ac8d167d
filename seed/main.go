package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dongeng-kita/dongeng_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, stories")
		dbPath   = flag.String("db", "", "Sqlite database path (used when DATABASE_URL is unset)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "users":
		log.Println("Seeding users only...")
		if err := mainSeeder.SeedUsersOnly(); err != nil {
			log.Fatalf("Failed to seed users: %v", err)
		}
	case "stories":
		log.Println("Seeding stories only...")
		if err := mainSeeder.SeedStoriesOnly(); err != nil {
			log.Fatalf("Failed to seed stories: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'users', or 'stories'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func openDatabase(sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Info)}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && sqlitePath == "" {
		log.Println("Connecting to postgres database")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if sqlitePath == "" {
		sqlitePath = "dongeng.db"
	}
	log.Printf("Connecting to sqlite database: %s", sqlitePath)
	return gorm.Open(sqlite.Open(sqlitePath), cfg)
}

func showHelp() {
	log.Println(`
Database Seeding Tool for DongengKita

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, users, stories
  -db string
        Sqlite database path (forces sqlite even when DATABASE_URL is set)
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only demo users
  go run seed/main.go -type=users

  # Seed against a local sqlite file
  go run seed/main.go -db=./dongeng.db

Environment Variables:
  DATABASE_URL - Postgres connection string (sqlite fallback when unset)`)
}
