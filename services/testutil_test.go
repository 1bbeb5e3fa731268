package services

import (
	"testing"

	"medal-tally-system/models"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory store per test, mirroring the default
// runtime store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.Category{},
		&models.Event{},
		&models.Result{},
		&models.User{},
	))
	return db
}

func newTestScoreService(t *testing.T) *ScoreService {
	t.Helper()
	return NewScoreService(newTestDB(t), session.New())
}

func createTeam(t *testing.T, db *gorm.DB, name, color string) models.Team {
	t.Helper()
	team := models.Team{Name: name, Color: color}
	require.NoError(t, db.Create(&team).Error)
	return team
}

func createEvent(t *testing.T, db *gorm.DB, name string, categoryID uint) models.Event {
	t.Helper()
	event := models.Event{Name: name, CategoryID: categoryID}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func createResult(t *testing.T, db *gorm.DB, teamID, eventID uint, medal models.Medal) models.Result {
	t.Helper()
	result := models.Result{TeamID: teamID, EventID: eventID, Medal: medal, Points: medal.Points()}
	require.NoError(t, db.Create(&result).Error)
	return result
}
