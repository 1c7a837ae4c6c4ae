package cmd

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mlyden/inputsource-cli/internal/output"
	"github.com/mlyden/inputsource-cli/internal/platform"
	"gopkg.in/yaml.v3"
)

// fakeSwitcher records switch requests and returns a canned error.
type fakeSwitcher struct {
	err   error
	calls []string
}

func (f *fakeSwitcher) SwitchInputSource(id string) error {
	f.calls = append(f.calls, id)
	return f.err
}

// withFakeProvider registers a provider backed by fake for the duration of
// the test.
func withFakeProvider(t *testing.T, fake *fakeSwitcher) {
	t.Helper()

	orig := platform.NewProviderFunc
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Switcher: fake}, nil
	}
	t.Cleanup(func() { platform.NewProviderFunc = orig })
}

func newTestMCPServer(t *testing.T, fake *fakeSwitcher) *mcpServer {
	t.Helper()

	withFakeProvider(t, fake)
	log, err := newLogger(false)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	t.Cleanup(func() { log.Sync() })

	s, err := newMCPServer(log)
	if err != nil {
		t.Fatalf("newMCPServer: %v", err)
	}
	return s
}

// toolResultText extracts the text payload of a tool result.
func toolResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestHandleSwitch_ReturnsSwitchResultYAML(t *testing.T) {
	fake := &fakeSwitcher{}
	s := newTestMCPServer(t, fake)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"source-id": platform.SourceFrenchKeyboard}

	result, err := s.handleSwitch(context.Background(), req)
	if err != nil {
		t.Fatalf("handleSwitch: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected a success result, got error: %q", toolResultText(t, result))
	}

	var decoded output.SwitchResult
	if err := yaml.Unmarshal([]byte(toolResultText(t, result)), &decoded); err != nil {
		t.Fatalf("tool result is not valid YAML: %v", err)
	}
	if !decoded.OK {
		t.Error("ok: got false, want true")
	}
	if decoded.Action != "switch" {
		t.Errorf("action: got %q, want %q", decoded.Action, "switch")
	}
	if decoded.Source != platform.SourceFrenchKeyboard {
		t.Errorf("source: got %q, want %q", decoded.Source, platform.SourceFrenchKeyboard)
	}
	if len(fake.calls) != 1 || fake.calls[0] != platform.SourceFrenchKeyboard {
		t.Errorf("switcher calls: got %v, want one call with %q", fake.calls, platform.SourceFrenchKeyboard)
	}
}

func TestHandleSwitch_SwitchErrorBecomesErrorResult(t *testing.T) {
	const id = "com.apple.keylayout.Colemak"
	fake := &fakeSwitcher{err: fmt.Errorf("input source %q: %w", id, platform.ErrSourceNotFound)}
	s := newTestMCPServer(t, fake)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"source-id": id}

	result, err := s.handleSwitch(context.Background(), req)
	if err != nil {
		t.Fatalf("handleSwitch: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}

	text := toolResultText(t, result)
	if !strings.Contains(text, id) {
		t.Errorf("error text should name the requested source, got %q", text)
	}
	if !strings.Contains(text, "input source not found") {
		t.Errorf("error text should carry the not-found message, got %q", text)
	}
}

func TestHandleSwitch_RequiresSourceID(t *testing.T) {
	fake := &fakeSwitcher{}
	s := newTestMCPServer(t, fake)

	result, err := s.handleSwitch(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleSwitch: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a missing source-id")
	}
	if len(fake.calls) != 0 {
		t.Errorf("switcher should not be invoked, got calls: %v", fake.calls)
	}
}

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{
		"source-id": "com.apple.keylayout.French",
		"numeric":   42,
		"float":     1.5,
	}

	if got := stringParam(params, "source-id", ""); got != "com.apple.keylayout.French" {
		t.Errorf("expected source ID, got %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for missing key, got %q", got)
	}
	// Non-string values are formatted rather than dropped
	if got := stringParam(params, "numeric", ""); got != "42" {
		t.Errorf("expected \"42\", got %q", got)
	}
	if got := stringParam(params, "float", ""); got != "1.5" {
		t.Errorf("expected \"1.5\", got %q", got)
	}
}

func TestMCPServer_UnsupportedTransport(t *testing.T) {
	log, err := newLogger(false)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer log.Sync()

	s := &mcpServer{log: log}
	if err := s.serve(MCPConfig{Transport: "carrier-pigeon"}); err == nil {
		t.Error("expected an error for an unsupported transport")
	}
}
