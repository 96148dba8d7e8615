// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/Luismorlan/chirper/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormTransaction is the callback function used during db.Transaction in Gorm.
type GormTransaction func(tx *gorm.DB) error

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	return getDB(dsn)
}

func getDB(connectionString string) (db *gorm.DB, err error) {
	return gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// DatabaseSetupAndMigration wires the follow-edge join model and
// migrates every domain table. Must be called once on startup before any
// store operation.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.User{}, "Following", &model.UserFollow{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.User{}, "Followers", &model.UserFollow{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.ProfileImage{},
		&model.Profile{},
		&model.User{},
		&model.Question{},
		&model.Choice{},
		&model.Tweet{},
		&model.Reply{},
		&model.Like{},
		&model.Vote{},
		&model.NewsFeed{},
	)
}

// NewTestDB creates an isolated in-memory SQLite database with the full
// schema migrated. Each test gets its own database, torn down with the
// test. Uniqueness constraints behave the same as on Postgres, which is
// what the toggle-engagement tests rely on.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("cannot migrate test database: %v", err)
	}
	t.Cleanup(func() {
		conn, _ := db.DB()
		conn.Close()
	})
	return db
}
