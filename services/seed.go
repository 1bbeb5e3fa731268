package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"medal-tally-system/models"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"gorm.io/gorm"
)

// Seed bootstraps the festival data set: the twelve teams, the six event
// categories, their events, a no_entry result for every team/event pair and
// the admin account. It is idempotent — rerunning against a populated store
// inserts nothing. The lifecycle is construct → seed → serve; a seed failure
// is fatal at startup.
func Seed(db *gorm.DB) error {
	teamData := []models.Team{
		{Name: "Royal Blue Dragons", Color: "dragon"},
		{Name: "Ninja Turquoise", Color: "ninja"},
		{Name: "Green Pythons", Color: "python"},
		{Name: "Yellow Hornets", Color: "hornet"},
		{Name: "Orange Jaguars", Color: "jaguar"},
		{Name: "Red Bulls", Color: "bull"},
		{Name: "Purple Wasps", Color: "wasp"},
		{Name: "Pink Panthers", Color: "panther"},
		{Name: "White Falcons", Color: "falcon"},
		{Name: "Gray Stallions", Color: "stallion"},
		{Name: "Brown Wolves", Color: "wolf"},
		{Name: "Maroon Tigers", Color: "tiger"},
	}
	for i := range teamData {
		exists, err := teamExists(db, teamData[i].Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		teamData[i].Slug = slug.Make(teamData[i].Name)
		if err := db.Create(&teamData[i]).Error; err != nil {
			return fmt.Errorf("failed to seed team %q: %w", teamData[i].Name, err)
		}
	}

	categoryData := []models.Category{
		{Name: "VISUAL ARTS", Color: "indigo"},
		{Name: "QUIZ BOWL", Color: "blue"},
		{Name: "MUSICAL", Color: "purple"},
		{Name: "DANCES", Color: "pink"},
		{Name: "LITERARY", Color: "amber"},
		{Name: "USG CONTESTS", Color: "yellow"},
	}
	categoryIDs := map[string]uint{}
	for i := range categoryData {
		existing, err := findCategoryByName(db, categoryData[i].Name)
		if err != nil {
			return err
		}
		if existing != nil {
			categoryIDs[categoryData[i].Name] = existing.ID
			continue
		}
		if err := db.Create(&categoryData[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", categoryData[i].Name, err)
		}
		categoryIDs[categoryData[i].Name] = categoryData[i].ID
	}

	eventData := []struct {
		name     string
		category string
	}{
		{"On-the-Spot Poster Making", "VISUAL ARTS"},
		{"Pencil Drawing", "VISUAL ARTS"},
		{"In Situ Painting", "VISUAL ARTS"},
		{"Charcoal Rendering", "VISUAL ARTS"},
		{"Photo Contest", "VISUAL ARTS"},

		{"Quiz Bowl", "QUIZ BOWL"},

		{"Instrumental Solo (Classical Guitar)", "MUSICAL"},
		{"Instrumental Solo (Acoustic)", "MUSICAL"},
		{"Live Band", "MUSICAL"},
		{"Vocal Solo (Kundiman)", "MUSICAL"},
		{"Vocal Duet", "MUSICAL"},
		{"Pop Solo", "MUSICAL"},

		{"Contemporary Dance", "DANCES"},
		{"Hip-Hop", "DANCES"},

		{"Pagsusulat ng Sanaysay", "LITERARY"},
		{"Essay Writing", "LITERARY"},
		{"Pagkukwento", "LITERARY"},
		{"Storytelling", "LITERARY"},
		{"Dagliang Talumpati", "LITERARY"},
		{"Extemporaneous Speaking", "LITERARY"},
		{"Radio Drama", "LITERARY"},
	}
	for _, e := range eventData {
		categoryID := categoryIDs[e.category]
		var count int64
		if err := db.Model(&models.Event{}).
			Where("name = ? AND category_id = ?", e.name, categoryID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		event := models.Event{Name: e.name, Slug: slug.Make(e.name), CategoryID: categoryID}
		if err := db.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to seed event %q: %w", e.name, err)
		}
	}

	// Every team starts with a no_entry row in every event, so standings show
	// all teams from day one.
	var teams []models.Team
	if err := db.Order("id").Find(&teams).Error; err != nil {
		return err
	}
	var events []models.Event
	if err := db.Order("id").Find(&events).Error; err != nil {
		return err
	}
	for _, team := range teams {
		for _, event := range events {
			var count int64
			if err := db.Model(&models.Result{}).
				Where("team_id = ? AND event_id = ?", team.ID, event.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			result := models.Result{
				TeamID:  team.ID,
				EventID: event.ID,
				Medal:   models.MedalNoEntry,
				Points:  models.MedalNoEntry.Points(),
			}
			if err := db.Create(&result).Error; err != nil {
				return err
			}
		}
	}

	return seedAdminUser(db)
}

func seedAdminUser(db *gorm.DB) error {
	username := envOr("ADMIN_USERNAME", "arcuadmin")

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := hashPassword(envOr("ADMIN_PASSWORD", "ArCuAdmin2025"))
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := models.User{
		Username: username,
		Password: hashed,
		Email:    envOr("ADMIN_EMAIL", "admin@ustp.edu.ph"),
		Name:     "ArCu Admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Admin user created with username '%s'", username)
	return nil
}

// teamExists matches names case- and accent-insensitively so a reseeded
// store with hand-edited names does not grow duplicates.
func teamExists(db *gorm.DB, name string) (bool, error) {
	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return false, err
	}
	for _, t := range teams {
		if normalizeName(t.Name) == normalizeName(name) {
			return true, nil
		}
	}
	return false, nil
}

func findCategoryByName(db *gorm.DB, name string) (*models.Category, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}
	for i := range categories {
		if normalizeName(categories[i].Name) == normalizeName(name) {
			return &categories[i], nil
		}
	}
	return nil, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
