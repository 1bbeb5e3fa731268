package services

import (
	"errors"
	"log"
	"strconv"

	"medal-tally-system/models"
	"medal-tally-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

// GetTeams serves GET /api/teams. Team identity is public regardless of the
// publication gate — only scores are gated.
func (s *TeamService) GetTeams(c *fiber.Ctx) error {
	teams := []models.Team{}
	if err := s.DB.Order("id").Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch teams"})
	}
	return c.JSON(teams)
}

// UpdateTeamIcon serves POST /api/teams/:teamId/icon. The icon arrives as a
// data-URL string and replaces the field in place (no history). When R2 is
// configured, well-formed data URLs are decoded and offloaded to the bucket
// and the public URL is stored instead.
func (s *TeamService) UpdateTeamIcon(c *fiber.Ctx) error {
	teamID, err := strconv.Atoi(c.Params("teamId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid team ID"})
	}

	var input struct {
		Icon string `json:"icon"`
	}
	if err := c.BodyParser(&input); err != nil || input.Icon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Icon data is required and must be a string",
		})
	}

	var team models.Team
	if err := s.DB.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Team not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	icon := input.Icon
	if utils.R2Enabled() {
		if data, contentType, ok := utils.ParseDataURL(input.Icon); ok {
			key := "icons/" + uuid.NewString() + utils.IconExtension(contentType)
			url, err := utils.UploadIconToR2(data, contentType, key)
			if err != nil {
				log.Printf("[ICONS] R2 upload failed for team %d: %v", team.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to upload icon"})
			}
			icon = url
		}
	}

	team.Icon = &icon
	if err := s.DB.Save(&team).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update team"})
	}

	return c.JSON(fiber.Map{
		"message": "Team icon updated successfully",
		"team":    team,
	})
}
