package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/check"
	"github.com/jwebster45206/endless-dnd/pkg/session"
)

// ErrorResponse matches the API error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateSessionRequest matches the API request structure.
type CreateSessionRequest struct {
	Name       string         `json:"name"`
	Gender     string         `json:"gender"`
	Race       string         `json:"race"`
	Class      string         `json:"class"`
	Backstory  string         `json:"backstory"`
	Attributes map[string]int `json:"attributes"`
	Skills     []string       `json:"skills"`
}

// RollResponse matches the API roll body: the resolved check plus the
// DM's continuation narrative.
type RollResponse struct {
	Roll *check.Result `json:"roll"`
	chat.ChatResponse
}

// TravelRequest matches the API travel body. Confirm commits the trip;
// otherwise the response is an estimate only.
type TravelRequest struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Location string  `json:"location,omitempty"`
	Confirm  bool    `json:"confirm,omitempty"`
}

// TravelResponse matches the API travel estimate/commit body.
type TravelResponse struct {
	Miles     int    `json:"miles"`
	Hours     int    `json:"hours"`
	Duration  string `json:"duration"`
	Committed bool   `json:"committed"`
	GameTime  string `json:"game_time,omitempty"`
	GameDate  string `json:"game_date,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func createSession(client *http.Client, baseURL string, req CreateSessionRequest) (*session.Session, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/sessions",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create session: %s", errorResp.Error)
	}

	var created session.Session
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &created, nil
}

func getSession(client *http.Client, baseURL string, sessionID uuid.UUID) (*session.Session, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s", baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get session: %s", errorResp.Error)
	}

	var s session.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &s, nil
}

func sendChat(client *http.Client, baseURL string, sessionID uuid.UUID, message string, lookAround bool) (*chat.ChatResponse, error) {
	req := chat.ChatRequest{
		SessionID:  sessionID,
		Message:    message,
		LookAround: lookAround,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/chat", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("chat request failed: %s", errorResp.Error)
	}

	var chatResp chat.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

func sendRoll(client *http.Client, baseURL string, sessionID uuid.UUID) (*RollResponse, error) {
	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/roll", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer([]byte("{}")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("roll request failed: %s", errorResp.Error)
	}

	var rollResp RollResponse
	if err := json.Unmarshal(body, &rollResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &rollResp, nil
}

func sendTravel(client *http.Client, baseURL string, sessionID uuid.UUID, req TravelRequest) (*TravelResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/travel", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("travel request failed: %s", errorResp.Error)
	}

	var travelResp TravelResponse
	if err := json.Unmarshal(body, &travelResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &travelResp, nil
}

// downloadSheet fetches the character sheet export and returns the
// server-suggested filename alongside the raw JSON bytes.
func downloadSheet(client *http.Client, baseURL string, sessionID uuid.UUID) (string, []byte, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s/sheet", baseURL, sessionID))
	if err != nil {
		return "", nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return "", nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return "", nil, fmt.Errorf("sheet request failed: %s", errorResp.Error)
	}

	filename := "character_sheet.json"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn, ok := params["filename"]; ok && fn != "" {
				filename = fn
			}
		}
	}
	return filename, body, nil
}
