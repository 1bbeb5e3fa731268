package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"medal-tally-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/scrypt"
	"gorm.io/gorm"
)

// scrypt parameters for password hashes, stored as "hexhash.hexsalt".
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
)

type AuthService struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewAuthService(db *gorm.DB, sessions *session.Store) *AuthService {
	return &AuthService{DB: db, Sessions: sessions}
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hex.EncodeToString(key) + "." + saltHex, nil
}

func comparePasswords(supplied, stored string) bool {
	hashHex, saltHex, found := strings.Cut(stored, ".")
	if !found {
		return false
	}
	key, err := scrypt.Key([]byte(supplied), []byte(saltHex), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// Register serves POST /api/register and logs the new account in.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil || input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password are required"})
	}

	var existing models.User
	err := s.DB.Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	user := models.User{
		Username: input.Username,
		Password: hashed,
		Email:    input.Email,
		Name:     input.Name,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if err := s.logIn(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login serves POST /api/login.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password are required"})
	}

	var user models.User
	if err := s.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	if !comparePasswords(input.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
	}

	if err := s.logIn(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	log.Printf("🔐 admin %s logged in", user.Username)
	return c.JSON(user)
}

// Logout serves POST /api/logout.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	sess, err := s.Sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// CurrentUser serves GET /api/user.
func (s *AuthService) CurrentUser(c *fiber.Ctx) error {
	sess, err := s.Sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	userID, ok := sess.Get("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	return c.JSON(user)
}

func (s *AuthService) logIn(c *fiber.Ctx, userID uint) error {
	sess, err := s.Sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", userID)
	return sess.Save()
}
