// upload-icons posts the per-team icon files in ICON_DIR to a running
// server. Files are base64 image payloads named "<teamID>.b64"; each is
// wrapped in a data URL and sent to /api/teams/:id/icon after logging in
// with the admin credentials.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"medal-tally-system/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	baseURL := envOr("TALLY_URL", "http://localhost:5000")
	iconDir := envOr("ICON_DIR", "icons")

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal("failed to create cookie jar:", err)
	}
	client := *utils.HTTPClient
	client.Jar = jar

	if err := login(&client, baseURL); err != nil {
		log.Fatal("login failed: ", err)
	}

	entries, err := os.ReadDir(iconDir)
	if err != nil {
		log.Fatal("failed to read icon dir: ", err)
	}

	uploaded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".b64") {
			continue
		}
		teamID, err := strconv.Atoi(strings.TrimSuffix(name, ".b64"))
		if err != nil {
			log.Printf("skipping %s: file name is not a team id", name)
			continue
		}

		if err := uploadIcon(&client, baseURL, iconDir, name, teamID); err != nil {
			log.Printf("❌ team %d: %v", teamID, err)
			continue
		}
		log.Printf("✅ team %d icon updated", teamID)
		uploaded++

		// Don't hammer the server.
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("Icon upload complete: %d icon(s) uploaded", uploaded)
}

func login(client *http.Client, baseURL string) error {
	body, _ := json.Marshal(map[string]string{
		"username": envOr("ADMIN_USERNAME", "arcuadmin"),
		"password": envOr("ADMIN_PASSWORD", "ArCuAdmin2025"),
	})
	resp, err := client.Post(baseURL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func uploadIcon(client *http.Client, baseURL, iconDir, fileName string, teamID int) error {
	raw, err := os.ReadFile(filepath.Join(iconDir, fileName))
	if err != nil {
		return err
	}

	body, _ := json.Marshal(map[string]string{
		"icon": "data:image/png;base64," + strings.TrimSpace(string(raw)),
	})
	resp, err := client.Post(
		fmt.Sprintf("%s/api/teams/%d/icon", baseURL, teamID),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
