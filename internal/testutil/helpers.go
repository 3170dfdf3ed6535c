// Package testutil provides shared helpers for tests, including a stub
// AnkiConnect server speaking the {action, params, version} protocol.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a test file with content, making parent
// directories as needed
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateScript writes an executable shell script and returns its path.
// Used to stand in for external tools like translate-shell.
func CreateScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to create script %s: %v", path, err)
	}
	return path
}

// AnkiHandler answers one AnkiConnect action. A non-empty errMsg becomes
// the response's error field.
type AnkiHandler func(action string, params json.RawMessage) (result any, errMsg string)

// AnkiConnectStub starts a stub AnkiConnect server. GET requests get the
// version banner; POST requests are dispatched to the handler and wrapped
// in the two-key result/error envelope. The server is closed with the test.
func AnkiConnectStub(t *testing.T, handle AnkiHandler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte("AnkiConnect"))
			return
		}

		var req struct {
			Action  string          `json:"action"`
			Params  json.RawMessage `json:"params"`
			Version int             `json:"version"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, errMsg := handle(req.Action, req.Params)
		envelope := map[string]any{"result": result, "error": nil}
		if errMsg != "" {
			envelope["error"] = errMsg
		}
		json.NewEncoder(w).Encode(envelope)
	}))
	t.Cleanup(server.Close)
	return server
}
