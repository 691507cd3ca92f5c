package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LYRA_TOKEN", "")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

// newAPIStub serves the assistant endpoints and records the last request.
func newAPIStub(t *testing.T, lastBody *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid or expired token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/assistant/voice":
			if lastBody != nil {
				_ = json.NewDecoder(r.Body).Decode(lastBody)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{
				"text":"I've created a task: \"pay rent\"",
				"intent":"create_task","outcome":"resolved","confidence":0.9,
				"actions":[{"id":"a1","type":"task-created","status":"completed","description":"Created task: pay rent","target":{"entityType":"task","entityId":"t1"}}],
				"suggestions":["Set a due date for this task"]}}`))
		case "/api/v1/assistant/insights":
			_, _ = w.Write([]byte(`{"success":true,"data":{"priorities":["You have 2 high-priority tasks"],"suggestions":["Review your goals"],"progress":67}}`))
		case "/api/v1/assistant/summary":
			_, _ = w.Write([]byte(`{"success":true,"data":{"tasksCompleted":3,"tasksCreated":1,"goalsProgress":2,"notesTaken":4,"recommendations":["Great productivity today!"]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClassifyCommand(t *testing.T) {
	out, err := runCLI(t, "classify", "add", "task", "to", "call", "mom")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "create_task")
	requireContains(t, out, "task_title")
	requireContains(t, out, "call mom")
	requireContains(t, out, "0.90")
}

func TestClassifyCommand_RequiresUtterance(t *testing.T) {
	if _, err := runCLI(t, "classify"); err == nil {
		t.Fatal("expected error without an utterance")
	}
}

func TestAskCommand(t *testing.T) {
	// Arrange
	var body map[string]any
	srv := newAPIStub(t, &body)

	// Act
	out, err := runCLI(t, "--server", srv.URL, "--token", "secret-token", "ask", "add", "task", "pay", "rent")

	// Assert
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if body["transcription"] != "add task pay rent" {
		t.Errorf("unexpected transcription sent: %v", body["transcription"])
	}
	requireContains(t, out, `I've created a task: "pay rent"`)
	requireContains(t, out, "resolved")
	requireContains(t, out, "task-created")
	requireContains(t, out, "t1")
	requireContains(t, out, "Set a due date for this task")
}

func TestInsightsAndSummaryCommands(t *testing.T) {
	srv := newAPIStub(t, nil)

	out, err := runCLI(t, "--server", srv.URL+"/", "--token", "secret-token", "insights")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	requireContains(t, out, "Progress: 67%")
	requireContains(t, out, "You have 2 high-priority tasks")

	out, err = runCLI(t, "--server", srv.URL, "--token", "secret-token", "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	requireContains(t, out, "Tasks completed")
	requireContains(t, out, "Great productivity today!")
}

func TestRemoteCommand_Errors(t *testing.T) {
	srv := newAPIStub(t, nil)

	if _, err := runCLI(t, "--server", srv.URL, "insights"); err == nil || !strings.Contains(err.Error(), "no access token") {
		t.Errorf("expected missing token error, got %v", err)
	}

	_, err := runCLI(t, "--server", srv.URL, "--token", "wrong", "summary")
	if err == nil || !strings.Contains(err.Error(), "Invalid or expired token") {
		t.Errorf("expected server error to surface, got %v", err)
	}
}
