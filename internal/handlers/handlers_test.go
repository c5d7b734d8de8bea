package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"faceserver/internal/logger"
	"faceserver/internal/model"
	"faceserver/internal/recognition"
	"faceserver/internal/repository/sqlite"
	"faceserver/internal/session"
	"faceserver/internal/websocket"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(t.TempDir())
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "handlers_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// fakeFrame answers every region with the same canned values.
type fakeFrame struct {
	regions    []recognition.Region
	encoding   []float32
	confidence float64
	scores     []float64
	closed     bool
}

func (f *fakeFrame) DetectFaces() ([]recognition.Region, error) { return f.regions, nil }
func (f *fakeFrame) Encoding(recognition.Region) ([]float32, error) {
	return f.encoding, nil
}
func (f *fakeFrame) TrackerConfidence(recognition.Region) (float64, error) {
	return f.confidence, nil
}
func (f *fakeFrame) EmotionScores(recognition.Region) ([]float64, error) {
	return f.scores, nil
}
func (f *fakeFrame) Close() { f.closed = true }

// fakeDecoder hands out a scripted frame regardless of the payload.
type fakeDecoder struct {
	frame *fakeFrame
	err   error
}

func (d *fakeDecoder) DecodeFrame([]byte) (recognition.Frame, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.frame, nil
}

func galleryEncoding(values ...float32) []float32 {
	enc := make([]float32, 128)
	copy(enc, values)
	return enc
}

func dataURI(payload []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestRecognizeHandler_EndToEnd(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	logs := sqlite.NewRecognitionLogRepository(db)
	hub := websocket.NewHubService(log)

	gallery := recognition.NewGallery([]recognition.GalleryEntry{
		{Name: "Alice", Encoding: galleryEncoding(1)},
	})
	pipeline := recognition.NewPipeline(gallery, 0.52, log)

	frame := &fakeFrame{
		regions:    []recognition.Region{{Top: 0, Right: 50, Bottom: 50, Left: 0}},
		encoding:   galleryEncoding(1.05),
		confidence: 0.9,
		scores:     []float64{0.01, 0.01, 0.02, 0.9, 0.02, 0.02, 0.02},
	}
	decoder := &fakeDecoder{frame: frame}

	handler := RecognizeHandler(decoder, pipeline, logs, hub, log)

	body, _ := json.Marshal(map[string]string{"image": dataURI([]byte("jpeg bytes"))})
	req := httptest.NewRequest(http.MethodPost, "/api/recognize", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recognized []string  `json:"recognized"`
		Emotions   []float64 `json:"emotions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Recognized) != 1 || resp.Recognized[0] != "Alice - Happy" {
		t.Errorf("Expected [Alice - Happy], got %v", resp.Recognized)
	}
	if len(resp.Emotions) != 7 {
		t.Errorf("Expected 7 emotion scores, got %d", len(resp.Emotions))
	}

	if !frame.closed {
		t.Error("The decoded frame must be closed after processing")
	}

	entries, err := logs.GetRecent(10)
	if err != nil {
		t.Fatalf("Failed to read recognition log: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice - Happy" {
		t.Errorf("Expected exactly one Alice - Happy log entry, got %v", entries)
	}
}

func TestRecognizeHandler_BadPayloads(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	logs := sqlite.NewRecognitionLogRepository(db)
	hub := websocket.NewHubService(log)
	pipeline := recognition.NewPipeline(recognition.NewGallery(nil), 0.52, log)

	tests := []struct {
		name    string
		decoder recognition.FrameDecoder
		body    string
	}{
		{"missing image field", &fakeDecoder{}, `{}`},
		{"not json", &fakeDecoder{}, `not json`},
		{"bad base64", &fakeDecoder{}, `{"image":"data:image/jpeg;base64,@@@not-base64@@@"}`},
		{"undecodable image", &fakeDecoder{err: errors.New("decoded image is empty")},
			`{"image":"data:image/jpeg;base64,` + base64.StdEncoding.EncodeToString([]byte("garbage")) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RecognizeHandler(tt.decoder, pipeline, logs, hub, log)
			req := httptest.NewRequest(http.MethodPost, "/api/recognize", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}

	entries, _ := logs.GetRecent(10)
	if len(entries) != 0 {
		t.Errorf("Rejected requests must not produce log entries, got %v", entries)
	}
}

func TestLoginHandler_SetsCookiesAndRotates(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	creds := sqlite.NewCredentialRepository(db)
	if _, err := creds.Insert(&model.Credential{Username: "admin", Password: "secret"}); err != nil {
		t.Fatalf("Failed to seed credential: %v", err)
	}
	sessions := session.NewManager(creds, log)
	handler := LoginHandler(sessions, log)

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303 redirect, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var token string
	for _, c := range cookies {
		if c.Name == SessionCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("Login must set the session cookie")
	}

	stored, _ := creds.GetByUsername("admin")
	if stored.SessionToken != token {
		t.Error("The cookie must carry the freshly stored token")
	}
}

func TestLoginHandler_RejectsBadCredentials(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	sessions := session.NewManager(sqlite.NewCredentialRepository(db), log)
	handler := LoginHandler(sessions, log)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestLogoutHandler_ClearsOnlyLocalMarker(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	creds := sqlite.NewCredentialRepository(db)
	id, _ := creds.Insert(&model.Credential{Username: "admin", Password: "secret"})
	sessions := session.NewManager(creds, log)

	_, token, err := sessions.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	LogoutHandler(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303 redirect, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.MaxAge >= 0 {
			t.Error("Logout must expire the session cookie")
		}
	}

	// The stored token survives a logout; a client still holding it would
	// pass validation.
	if valid, _ := sessions.Validate(id, token); !valid {
		t.Error("Logout must not revoke the stored token")
	}
}

func TestSessionStatusHandler(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	creds := sqlite.NewCredentialRepository(db)
	id, _ := creds.Insert(&model.Credential{Username: "admin", Password: "secret"})
	sessions := session.NewManager(creds, log)

	_, token, _ := sessions.Login("admin", "secret")
	handler := SessionStatusHandler(sessions, log)

	status := func(token string) string {
		req := httptest.NewRequest(http.MethodGet, "/api/session/status", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: UserCookie, Value: strconv.FormatInt(id, 10)})
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		}
		rec := httptest.NewRecorder()
		handler(rec, req)

		var resp map[string]string
		json.Unmarshal(rec.Body.Bytes(), &resp)
		return resp["status"]
	}

	if got := status(token); got != "valid" {
		t.Errorf("Expected valid for the current token, got %q", got)
	}
	if got := status("stale-token"); got != "invalid" {
		t.Errorf("Expected invalid for a stale token, got %q", got)
	}
	if got := status(""); got != "invalid" {
		t.Errorf("Expected invalid without cookies, got %q", got)
	}
}

func TestChatHandler_Intents(t *testing.T) {
	handler := ChatHandler()

	tests := []struct {
		query     string
		wantReply string
	}{
		{"please PLAY MUSIC now", "Okay, playing music on YouTube."},
		{"schedule meeting for monday", "Okay, meeting scheduled in your calendar."},
		{"add this to my calendar", "Okay, meeting scheduled in your calendar."},
		{"what is the weather", "Sorry, I didn't understand. Try saying play music or schedule meeting."},
	}

	for _, tt := range tests {
		body, _ := json.Marshal(map[string]string{"query": tt.query})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(string(body)))
		rec := httptest.NewRecorder()
		handler(rec, req)

		var resp struct {
			Reply string `json:"reply"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Reply != tt.wantReply {
			t.Errorf("Query %q: expected %q, got %q", tt.query, tt.wantReply, resp.Reply)
		}
	}
}

func TestRecognitionLogsHandler_Limit(t *testing.T) {
	log := newTestLogger(t)
	db := newTestDB(t)
	logs := sqlite.NewRecognitionLogRepository(db)

	for i := 0; i < 15; i++ {
		if _, err := logs.Insert(&model.RecognitionEntry{Name: "Alice - Happy"}); err != nil {
			t.Fatalf("Failed to insert entry: %v", err)
		}
	}

	handler := RecognitionLogsHandler(logs, 10, log)
	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp struct {
		Logs []struct {
			Name      string `json:"name"`
			Timestamp string `json:"timestamp"`
		} `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Logs) != 10 {
		t.Errorf("Expected 10 entries, got %d", len(resp.Logs))
	}
}
