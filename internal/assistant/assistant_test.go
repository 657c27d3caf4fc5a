package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mdip/internal/domain"
	"mdip/internal/session"
	"mdip/internal/tabular"
)

func incidentTable() tabular.Table {
	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return tabular.FromIncidents([]domain.Incident{
		{Date: day, ThreatCategory: "Phishing", Severity: domain.SeverityHigh, Status: domain.StatusResolved, ResolutionTimeHours: domain.Hours(4)},
		{Date: day, ThreatCategory: "Malware", Severity: domain.SeverityLow, Status: domain.StatusResolved, ResolutionTimeHours: domain.Hours(8)},
		{Date: day, ThreatCategory: "DDoS", Severity: domain.SeverityLow, Status: domain.StatusUnresolved},
	})
}

func TestPrepareContext(t *testing.T) {
	if got := PrepareContext(tabular.Table{}, 10); got != NoDataContext {
		t.Errorf("Expected %q, got %q", NoDataContext, got)
	}

	got := PrepareContext(incidentTable(), 2)
	for _, want := range []string{
		"Dataset Shape: 3 rows, 5 columns",
		"Columns: Date, Threat Category, Severity, Status, Resolution Time (hours)",
		"Numeric Summary:",
		"Sample Data (first 2 rows):",
		"Malware",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected context to contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "DDoS") {
		t.Error("Expected the sample to stop after 2 rows")
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Patch the mail gateway."}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 1000})
	reply, err := c.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "help"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Patch the mail gateway." {
		t.Errorf("Unexpected reply %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" || gotBody.MaxTokens != 1000 || len(gotBody.Messages) != 1 {
		t.Errorf("Unexpected request body: %+v", gotBody)
	}
}

func TestOpenAIClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Incorrect API key"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(OpenAIConfig{APIKey: "bad", BaseURL: srv.URL}).Complete(context.Background(), nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Incorrect API key" {
		t.Errorf("Expected a 401 API error, got %v", err)
	}

	if _, err := NewOpenAIClient(OpenAIConfig{BaseURL: srv.URL}).Complete(context.Background(), nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

type fakeCompleter struct {
	reply    string
	err      error
	messages []ChatMessage
}

func (f *fakeCompleter) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func TestAssistant_Ask(t *testing.T) {
	sess := session.NewManager().Start(domain.User{Username: "sec", Role: domain.RoleCyberSecurity})
	fake := &fakeCompleter{reply: "Phishing is trending."}
	a := New(fake, 50)

	got := a.Ask(context.Background(), sess, session.TabCyber, "What is trending?", incidentTable())
	if got != "Phishing is trending." {
		t.Errorf("Unexpected reply %q", got)
	}
	system := fake.messages[0]
	if system.Role != "system" || !strings.Contains(system.Content, "cybersecurity expert") ||
		!strings.Contains(system.Content, "Current Data Context:\nDataset Shape: 3 rows") {
		t.Errorf("Unexpected system message: %q", system.Content)
	}

	// The second question carries the first exchange.
	a.Ask(context.Background(), sess, session.TabCyber, "And why?", tabular.Table{})
	if len(fake.messages) != 4 || fake.messages[1].Content != "What is trending?" || fake.messages[3].Content != "And why?" {
		t.Errorf("Expected history to be replayed, got %+v", fake.messages)
	}
	if !strings.Contains(fake.messages[0].Content, "No incident data available.") {
		t.Error("Expected the empty-tab context")
	}
	if len(sess.History(session.TabCyber)) != 4 {
		t.Errorf("Expected 4 history entries, got %d", len(sess.History(session.TabCyber)))
	}
}

func TestAssistant_AskReturnsErrorText(t *testing.T) {
	sess := session.NewManager().Start(domain.User{Username: "ops", Role: domain.RoleITOperations})
	a := New(&fakeCompleter{err: errors.New("connection refused")}, 0)

	got := a.Ask(context.Background(), sess, session.TabIT, "status?", tabular.Table{})
	if !strings.HasPrefix(got, "Error: connection refused") {
		t.Errorf("Expected an error reply, got %q", got)
	}
	history := sess.History(session.TabIT)
	if len(history) != 2 || history[1].Content != got {
		t.Errorf("Expected the error reply in history, got %+v", history)
	}
}
