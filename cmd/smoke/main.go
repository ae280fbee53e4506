package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const defaultAPIBase = "http://localhost:8080"

var (
	apiBase   string
	token     string
	personID  string
	weekStart string
	client    = &http.Client{Timeout: 30 * time.Second}

	menuID    string
	menuState []map[string]any
)

func main() {
	fmt.Println("=== Menu Board Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")
	personID = getEnv("SMOKE_PERSON_ID", "smoke-user")
	weekStart = mondayOf(time.Now()).Format("2006-01-02")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Printf("Person: %s, week: %s\n", personID, weekStart)
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Token", testDevToken},
		{"Meal Moments", testMealMoments},
		{"Create Menu", testCreateMenu},
		{"Unassigned Pool", testUnassigned},
		{"Move To Monday", testMove},
		{"Save Board", testSave},
		{"Load Board", testBoard},
		{"Export PDF", testExport},
		{"Delete Menu", testDeleteMenu},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	_, err := call("GET", "/healthz", nil, nil)
	return err
}

// testDevToken obtains a token unless SMOKE_TOKEN is set. 404 means dev auth is off.
func testDevToken() error {
	if token != "" {
		return nil
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	status, err := call("POST", "/v1/auth/dev", map[string]string{"person_id": personID}, &resp)
	if status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	token = resp.AccessToken
	return nil
}

func testMealMoments() error {
	var resp struct {
		Moments []map[string]any `json:"moments"`
	}
	if _, err := call("GET", "/v1/meal-moments", nil, &resp); err != nil {
		return err
	}
	if len(resp.Moments) == 0 {
		return fmt.Errorf("no meal moments returned")
	}
	return nil
}

func testCreateMenu() error {
	var resp struct {
		Menu map[string]any `json:"menu"`
	}
	body := map[string]any{
		"personId": personID,
		"name":     fmt.Sprintf("Smoke soup %d", time.Now().Unix()),
		"category": "lunch",
		"ingredients": []map[string]any{
			{"id": "carrot", "name": "Carrot", "carbs": 10, "protein": 0.9, "fat": 0.2, "weight": 120},
			{"id": "egg", "name": "Egg", "carbs": 0.4, "protein": 6.3, "fat": 4.8, "weight": 2, "unit": "UNIT"},
		},
	}
	if _, err := call("POST", "/v1/menus", body, &resp); err != nil {
		return err
	}

	id, _ := resp.Menu["id"].(string)
	if id == "" {
		return fmt.Errorf("created menu has no id")
	}
	menuID = id
	return nil
}

func testUnassigned() error {
	var resp struct {
		Menus []map[string]any `json:"menus"`
	}
	if _, err := call("GET", "/v1/menus/unassigned?person_id="+url.QueryEscape(personID), nil, &resp); err != nil {
		return err
	}
	for _, m := range resp.Menus {
		if m["id"] == menuID {
			menuState = []map[string]any{m}
			return nil
		}
	}
	return fmt.Errorf("menu %s not in unassigned pool", menuID)
}

func testMove() error {
	var resp struct {
		Outcome string           `json:"outcome"`
		Menus   []map[string]any `json:"menus"`
	}
	body := map[string]any{
		"menus": menuState,
		"drag": map[string]any{
			"draggedId":   menuID,
			"source":      map[string]any{"containerId": "unassigned", "index": 0},
			"destination": map[string]any{"containerId": "monday", "index": 0},
		},
	}
	if _, err := call("POST", "/v1/board/move", body, &resp); err != nil {
		return err
	}
	if resp.Outcome != "assigned" {
		return fmt.Errorf("unexpected outcome %q", resp.Outcome)
	}
	menuState = resp.Menus
	return nil
}

func testSave() error {
	body := map[string]any{
		"person":    personID,
		"weekStart": weekStart,
		"menus":     menuState,
	}
	_, err := call("POST", "/v1/board/save", body, nil)
	return err
}

func testBoard() error {
	var resp struct {
		Board struct {
			Days map[string][]map[string]any `json:"days"`
		} `json:"board"`
	}
	path := fmt.Sprintf("/v1/board?person_id=%s&week_start=%s", url.QueryEscape(personID), weekStart)
	if _, err := call("GET", path, nil, &resp); err != nil {
		return err
	}
	for _, m := range resp.Board.Days["monday"] {
		if m["id"] == menuID {
			return nil
		}
	}
	return fmt.Errorf("menu %s not found on monday", menuID)
}

func testExport() error {
	path := fmt.Sprintf("/v1/plans/export?person_id=%s&week_start=%s", url.QueryEscape(personID), weekStart)
	req, err := http.NewRequest("GET", apiBase+path, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(body))
	}

	// либо PDF, либо presigned URL
	if bytes.HasPrefix(body, []byte("%PDF")) {
		return nil
	}
	var urlResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &urlResp); err != nil || urlResp.URL == "" {
		return fmt.Errorf("expected a PDF or a presigned URL, got %s", truncate(body))
	}
	return nil
}

func testDeleteMenu() error {
	_, err := call("DELETE", "/v1/menus?id="+url.QueryEscape(menuID), nil, nil)
	return err
}

// call sends a JSON request and decodes a 2xx JSON response into out.
func call(method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func truncate(b []byte) string {
	if len(b) > 512 {
		return string(b[:512]) + "..."
	}
	return string(b)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if len(s) <= 8 {
		if s == "" {
			return "(not set)"
		}
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
