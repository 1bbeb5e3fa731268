package services

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"medal-tally-system/middleware"
	"medal-tally-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// ScoreService owns result rows, the computed standings/event views and the
// publication gate. The gate is process-wide state: while hidden, viewers
// without a session get zeroed standings and empty event results; admins
// always see live data. There is no snapshotting — every read recomputes
// from the current rows.
type ScoreService struct {
	DB       *gorm.DB
	Sessions *session.Store

	mu              sync.RWMutex
	published       bool
	lastPublishTime time.Time
	publishAt       *time.Time
}

func NewScoreService(db *gorm.DB, sessions *session.Store) *ScoreService {
	return &ScoreService{DB: db, Sessions: sessions, lastPublishTime: time.Now()}
}

// Published reports the current gate state.
func (s *ScoreService) Published() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published
}

// LastPublishTime is stamped whenever the gate enters the published state.
// Hiding results does not touch it.
func (s *ScoreService) LastPublishTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPublishTime
}

func (s *ScoreService) setPublished(publish bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = publish
	if publish {
		s.lastPublishTime = time.Now()
	}
}

// TeamStandings computes the live tally: one row per team, every result row
// counted (duplicate medals for the same team+event included), ordered by
// total points descending. Ties keep team insertion order via the stable
// sort.
func (s *ScoreService) TeamStandings() ([]models.TeamStanding, error) {
	var teams []models.Team
	if err := s.DB.Order("id").Find(&teams).Error; err != nil {
		return nil, err
	}

	var results []models.Result
	if err := s.DB.Order("id").Find(&results).Error; err != nil {
		return nil, err
	}

	byTeam := make(map[uint][]models.Result, len(teams))
	for _, r := range results {
		byTeam[r.TeamID] = append(byTeam[r.TeamID], r)
	}

	standings := make([]models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		row := models.TeamStanding{
			TeamID:    team.ID,
			TeamName:  team.Name,
			TeamColor: team.Color,
			Icon:      team.Icon,
		}
		for _, r := range byTeam[team.ID] {
			row.TotalPoints += r.Points
			switch r.Medal {
			case models.MedalGold:
				row.GoldCount++
			case models.MedalSilver:
				row.SilverCount++
			case models.MedalBronze:
				row.BronzeCount++
			}
		}
		standings = append(standings, row)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalPoints > standings[j].TotalPoints
	})
	return standings, nil
}

// EventResults builds the per-event view. The gold/silver/bronze summary is
// the first row with that medal in insertion order — several rows with the
// same medal are legal, the summary is illustrative and the full list is in
// Results. Returns gorm.ErrRecordNotFound for an unknown event.
func (s *ScoreService) EventResults(eventID uint) (*models.EventResult, error) {
	var event models.Event
	if err := s.DB.First(&event, eventID).Error; err != nil {
		return nil, err
	}

	var results []models.Result
	if err := s.DB.Where("event_id = ?", eventID).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Result{}
	}

	view := &models.EventResult{
		EventID:   event.ID,
		EventName: event.Name,
		Results:   results,
	}

	var goldSeen, silverSeen, bronzeSeen bool
	for _, r := range results {
		switch r.Medal {
		case models.MedalGold:
			if !goldSeen {
				view.Gold = s.medalWinner(r.TeamID)
				goldSeen = true
			}
		case models.MedalSilver:
			if !silverSeen {
				view.Silver = s.medalWinner(r.TeamID)
				silverSeen = true
			}
		case models.MedalBronze:
			if !bronzeSeen {
				view.Bronze = s.medalWinner(r.TeamID)
				bronzeSeen = true
			}
		}
	}
	return view, nil
}

// medalWinner resolves the denormalized team identity for a summary slot.
// Result rows hold soft references, so a missing team leaves the slot empty.
func (s *ScoreService) medalWinner(teamID uint) *models.MedalWinner {
	var team models.Team
	if err := s.DB.First(&team, teamID).Error; err != nil {
		return nil
	}
	return &models.MedalWinner{TeamID: team.ID, TeamName: team.Name, TeamColor: team.Color}
}

// GetStandings serves GET /api/standings with the publication gate applied:
// viewers without a session see every team zeroed until results are
// published.
func (s *ScoreService) GetStandings(c *fiber.Ctx) error {
	if !middleware.IsAuthenticated(s.Sessions, c) && !s.Published() {
		var teams []models.Team
		if err := s.DB.Order("id").Find(&teams).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}
		zeroed := make([]models.TeamStanding, 0, len(teams))
		for _, team := range teams {
			zeroed = append(zeroed, models.TeamStanding{
				TeamID:    team.ID,
				TeamName:  team.Name,
				TeamColor: team.Color,
				Icon:      team.Icon,
			})
		}
		return c.JSON(zeroed)
	}

	standings, err := s.TeamStandings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.JSON(standings)
}

// GetEventResults serves GET /api/events/:eventId/results. While hidden,
// viewers get the event identity with no medal summary and an empty result
// list.
func (s *ScoreService) GetEventResults(c *fiber.Ctx) error {
	eventID, err := strconv.Atoi(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid event ID"})
	}

	view, err := s.EventResults(uint(eventID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Event not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if !middleware.IsAuthenticated(s.Sessions, c) && !s.Published() {
		return c.JSON(models.EventResult{
			EventID:   view.EventID,
			EventName: view.EventName,
			Results:   []models.Result{},
		})
	}

	return c.JSON(view)
}

// GetPublished serves GET /api/results/published.
func (s *ScoreService) GetPublished(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"published": s.Published()})
}

// CreateResult serves POST /api/results/update. The name is historical: an
// "update" always appends a new result row — there is no uniqueness
// constraint per team+event, so recording two golds for the same pair keeps
// both. Returns the new row plus fresh standings and event results so the
// caller skips a second round trip.
func (s *ScoreService) CreateResult(c *fiber.Ctx) error {
	var input struct {
		TeamID  *uint  `json:"teamId"`
		EventID *uint  `json:"eventId"`
		Medal   string `json:"medal"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request data"})
	}

	var violations []fiber.Map
	if input.TeamID == nil {
		violations = append(violations, fiber.Map{"path": "teamId", "message": "Required"})
	}
	if input.EventID == nil {
		violations = append(violations, fiber.Map{"path": "eventId", "message": "Required"})
	}
	medal := models.Medal(input.Medal)
	if !medal.Valid() {
		violations = append(violations, fiber.Map{"path": "medal", "message": "Invalid medal value"})
	}
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request data",
			"errors":  violations,
		})
	}

	// Event is checked before team; callers depend on that 404 ordering.
	var event models.Event
	if err := s.DB.First(&event, *input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Event not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	var team models.Team
	if err := s.DB.First(&team, *input.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Team not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	result := models.Result{
		TeamID:  team.ID,
		EventID: event.ID,
		Medal:   medal,
		Points:  medal.Points(),
	}
	if err := s.DB.Create(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	log.Printf("🏅 %s recorded for %s in %s (+%d pts)", medal.Label(), team.Name, event.Name, result.Points)

	standings, err := s.TeamStandings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	eventResults, err := s.EventResults(event.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"message":      "Result created successfully",
		"result":       result,
		"standings":    standings,
		"eventResults": eventResults,
	})
}

// DeleteResult serves DELETE /api/results/:resultId. Hard delete, no
// cascade or side-table cleanup.
func (s *ScoreService) DeleteResult(c *fiber.Ctx) error {
	resultID, err := strconv.Atoi(c.Params("resultId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid result ID"})
	}

	var result models.Result
	if err := s.DB.First(&result, resultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Result not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if err := s.DB.Delete(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Result deleted successfully"})
}

// SetPublished serves POST /api/results/publish with an explicit boolean.
func (s *ScoreService) SetPublished(c *fiber.Ctx) error {
	var input struct {
		Publish *bool `json:"publish"`
	}
	if err := c.BodyParser(&input); err != nil || input.Publish == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Publish flag must be a boolean"})
	}

	s.setPublished(*input.Publish)

	message := "Results hidden successfully"
	if *input.Publish {
		message = "Results published successfully"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"published": *input.Publish,
	})
}
