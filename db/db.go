package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const databaseName = "battleship"

// One insert per accepted attack is the whole load.
var poolConfig = struct {
	maxOpen, maxIdle int
	maxLife          time.Duration
}{maxOpen: 20, maxIdle: 5, maxLife: time.Minute * 15}

// Open connects to Postgres and verifies the connection with a ping.
func Open(psqlUrl string) (*sql.DB, error) {
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping analytics db: %w", err)
	}

	db.SetMaxOpenConns(poolConfig.maxOpen)
	db.SetMaxIdleConns(poolConfig.maxIdle)
	db.SetConnMaxLifetime(poolConfig.maxLife)
	return db, nil
}

// Migrate applies every pending migration found in migrationDir,
// a golang-migrate source URL such as file://db/migration.
func Migrate(db *sql.DB, migrationDir string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{DatabaseName: databaseName})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, databaseName, driver)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Println("fresh database; no migration applied yet")
	case err != nil:
		return err
	case dirty:
		return fmt.Errorf("database is dirty at migration version %d", version)
	default:
		log.Println("migration version:", version)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Println("analytics schema is up to date")
	return nil
}

// MustConnectToDb opens the analytics database and migrates it,
// panicking on failure. Only meant for process startup.
func MustConnectToDb(psqlUrl, migrationDir string) *sql.DB {
	db, err := Open(psqlUrl)
	if err != nil {
		panic(err)
	}
	if err := Migrate(db, migrationDir); err != nil {
		db.Close()
		panic(err)
	}
	return db
}
