package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rachaAPI/internal/chat"
)

const (
	geminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	offlineReplyTag   = "(Coach offline 🤖)"
	defaultCoachDelay = 600 * time.Millisecond
)

// defaultCoachModels are tried in order; the first parseable reply wins.
var defaultCoachModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash-001",
}

// backupReplies is the offline phrase set. One is picked at random whenever
// the provider is unreachable, misconfigured, or returns garbage.
var backupReplies = []string{
	"Keep it up! Consistency is the key to success. 💪",
	"It doesn't matter how slow you go, as long as you don't stop. 🐢➡️🐇",
	"Every day counts. Today is a great day to add to your streak! 🔥",
	"Pain is temporary, streak glory is forever. 🏆",
	"Let's go! One more day, one more win. ✨",
	"Remember why you started. You've got this! 🚀",
	"Discipline takes you where motivation can't. 🧠",
}

var coachFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "coach_offline_fallbacks_total",
	Help: "Replies served from the offline phrase set instead of the provider",
})

func init() {
	prometheus.MustRegister(coachFallbacksTotal)
}

// CoachConfig tunes the dialogue client. Zero values fall back to defaults.
type CoachConfig struct {
	APIKey        string
	Endpoints     []string // full generateContent URLs, tried in order
	Timeout       time.Duration
	FallbackDelay time.Duration
}

type CoachService struct {
	apiKey        string
	endpoints     []string
	httpClient    *http.Client
	fallbackDelay time.Duration
}

// NewCoachService builds a client for the text-completion provider. An empty
// API key puts the coach permanently in offline mode: no network attempt is
// ever made.
func NewCoachService(apiKey string) *CoachService {
	return NewCoachServiceWithConfig(CoachConfig{APIKey: apiKey})
}

func NewCoachServiceWithConfig(cfg CoachConfig) *CoachService {
	endpoints := cfg.Endpoints
	if len(endpoints) == 0 {
		for _, model := range defaultCoachModels {
			endpoints = append(endpoints, fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, model))
		}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	delay := cfg.FallbackDelay
	if delay == 0 {
		delay = defaultCoachDelay
	}
	return &CoachService{
		apiKey:        cfg.APIKey,
		endpoints:     endpoints,
		httpClient:    &http.Client{Timeout: timeout},
		fallbackDelay: delay,
	}
}

// Wire shapes of the generateContent API.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Converse produces exactly one coach reply for the new message. It never
// fails from the caller's point of view: any provider problem degrades to a
// canned offline phrase.
func (s *CoachService) Converse(ctx context.Context, history []chat.Turn, message string, streakCtx chat.StreakContext) *chat.Reply {
	turns := append(append([]chat.Turn{}, history...), chat.Turn{Role: chat.RoleUser, Content: message})

	if s.apiKey != "" {
		if text, ok := s.tryProvider(ctx, turns, streakCtx); ok {
			return &chat.Reply{Content: text}
		}
		log.Println("CoachService: provider unavailable, switching to offline reply")
	}

	return s.offlineReply(ctx)
}

func (s *CoachService) tryProvider(ctx context.Context, turns []chat.Turn, streakCtx chat.StreakContext) (string, bool) {
	contents := s.buildContents(turns, streakCtx)

	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		log.Printf("CoachService: failed to encode request: %v", err)
		return "", false
	}

	for _, endpoint := range s.endpoints {
		text, err := s.generate(ctx, endpoint, body)
		if err != nil {
			log.Printf("CoachService: %s: %v", endpoint, err)
			continue
		}
		return text, true
	}
	return "", false
}

func (s *CoachService) generate(ctx context.Context, endpoint string, body []byte) (string, error) {
	url := fmt.Sprintf("%s?key=%s", endpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("malformed response body: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("response contained empty text")
	}
	return text, nil
}

// buildContents maps the turn history onto the provider's wire format and
// prepends the system exchange. The provider rejects a leading model turn, so
// one is dropped if present.
func (s *CoachService) buildContents(turns []chat.Turn, streakCtx chat.StreakContext) []geminiContent {
	systemPrompt := fmt.Sprintf(
		"You are 'Racha Coach'. Your job is to motivate the user to keep their daily streak alive. "+
			"Current streak: %d days. Longest streak: %d days. Be brief, upbeat, and use emojis.",
		streakCtx.CurrentStreak, streakCtx.LongestStreak,
	)

	var mapped []geminiContent
	for _, t := range turns {
		role := "user"
		if t.Role == chat.RoleAssistant {
			role = "model"
		}
		mapped = append(mapped, geminiContent{Role: role, Parts: []geminiPart{{Text: t.Content}}})
	}
	if len(mapped) > 0 && mapped[0].Role == "model" {
		mapped = mapped[1:]
	}

	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: "[SYSTEM]: " + systemPrompt}}},
		{Role: "model", Parts: []geminiPart{{Text: "Understood."}}},
	}
	return append(contents, mapped...)
}

// offlineReply waits a beat so the UX matches a real round-trip, then serves
// a phrase from the backup set, tagged so the client can tell.
func (s *CoachService) offlineReply(ctx context.Context) *chat.Reply {
	select {
	case <-time.After(s.fallbackDelay):
	case <-ctx.Done():
	}

	coachFallbacksTotal.Inc()
	phrase := backupReplies[rand.Intn(len(backupReplies))]
	return &chat.Reply{
		Content: phrase + " " + offlineReplyTag,
		Offline: true,
	}
}
