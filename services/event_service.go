package services

import (
	"errors"

	"medal-tally-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// GetEvents serves GET /api/events.
func (s *EventService) GetEvents(c *fiber.Ctx) error {
	events := []models.Event{}
	if err := s.DB.Order("id").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch events"})
	}
	return c.JSON(events)
}

// GetCategories serves GET /api/categories: every category with its events,
// in insertion order. Events is always an array, never null.
func (s *EventService) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := s.DB.Order("id").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch categories"})
	}

	out := make([]models.CategoryWithEvents, 0, len(categories))
	for _, category := range categories {
		var events []models.Event
		if err := s.DB.Where("category_id = ?", category.ID).Order("id").Find(&events).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch events"})
		}
		if events == nil {
			events = []models.Event{}
		}
		out = append(out, models.CategoryWithEvents{Category: category, Events: events})
	}
	return c.JSON(out)
}

// CreateEvent serves POST /api/events. Categories are fixed at seed time, so
// the referenced category must already exist.
func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name"`
		CategoryID uint   `json:"categoryId"`
	}
	if err := c.BodyParser(&input); err != nil || input.Name == "" || input.CategoryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Event name and category ID are required",
		})
	}

	var category models.Category
	if err := s.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	event := models.Event{
		Name:       input.Name,
		Slug:       slug.Make(input.Name),
		CategoryID: category.ID,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create event"})
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}
