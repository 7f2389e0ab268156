package googlegenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/designkit/internal/design"
)

// TestNew tests creating a provider with defaults.
func TestNew(t *testing.T) {
	p, err := New(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if p.Name() != "google-genai" {
		t.Errorf("Expected name 'google-genai', got '%s'", p.Name())
	}
	if p.Model() != defaultModel {
		t.Errorf("Expected default model '%s', got '%s'", defaultModel, p.Model())
	}
	if p.cfg.Backend != defaultBackend {
		t.Errorf("Expected default backend '%s', got '%s'", defaultBackend, p.cfg.Backend)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := New(Config{})
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("expected GOOGLE_API_KEY error, got %v", err)
	}
}

func TestNewReadsEnvKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "from-env")

	p, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q", p.cfg.APIKey)
	}
}

func TestNewInvalidBackend(t *testing.T) {
	if _, err := New(Config{APIKey: "k", Backend: "bedrock"}); err == nil {
		t.Error("expected error for invalid backend")
	}
}

func TestNewVertexNeedsNoKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	if _, err := New(Config{Backend: BackendVertexAI}); err != nil {
		t.Errorf("vertex-ai backend should not require an API key: %v", err)
	}
}

// TestGenerateGuide runs a request against a local server that answers every
// path with a single candidate.
func TestGenerateGuide(t *testing.T) {
	reply := `{"colorSystem": {"primary": "#abcdef", "secondary": "#fedcba", "background": "#ffffff", "text": "#000000"}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := body["systemInstruction"]; !ok {
			t.Errorf("request has no systemInstruction: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": reply}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer server.Close()

	p, err := New(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	sys, err := p.GenerateGuide(context.Background(), design.GuideRequest{}, "system prompt")
	if err != nil {
		t.Fatalf("GenerateGuide() error = %v", err)
	}
	if sys.ColorSystem.Primary != "#abcdef" {
		t.Errorf("Primary = %s", sys.ColorSystem.Primary)
	}
}

func TestGenerateGuideTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	p, err := New(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = p.GenerateGuide(context.Background(), design.GuideRequest{}, "system prompt")
	if err == nil {
		t.Fatal("GenerateGuide() against a stalled server should fail")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("GenerateGuide() took %v, want it bounded by the timeout", elapsed)
	}
}

func TestNewDefaultTimeout(t *testing.T) {
	p, err := New(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatal(err)
	}
	if p.cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", p.cfg.Timeout, DefaultTimeout)
	}
}
