package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mlyden/inputsource-cli/internal/output"
	"github.com/mlyden/inputsource-cli/internal/platform"
	"github.com/mlyden/inputsource-cli/internal/version"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the platform provider.
type mcpServer struct {
	provider   *platform.Provider
	providerMu sync.Mutex
	log        *zap.SugaredLogger
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates an MCP server exposing the input source switcher.
func newMCPServer(log *zap.SugaredLogger) (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		provider: provider,
		log:      log,
	}

	s.mcp = mcpserver.NewMCPServer(
		"inputsource-cli",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		s.log.Infow("starting MCP server", "transport", "stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		s.log.Infow("starting MCP server", "transport", "streamable-http", "port", cfg.Port)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("switch_input_source",
			mcp.WithDescription("Switch the system-wide macOS keyboard input source (keyboard layout or input method). The source must already be enabled in System Settings."),
			mcp.WithString("source-id", mcp.Description("Input source identifier, e.g. 'com.apple.keylayout.French' or 'com.apple.inputmethod.Kotoeri.Japanese'"), mcp.Required()),
		),
		s.handleSwitch,
	)
}

func (s *mcpServer) handleSwitch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "source-id", "")
	if id == "" {
		return mcp.NewToolResultError("source-id parameter is required"), nil
	}

	// TIS selection is a global mutation, so tool calls are serialized.
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	s.log.Debugw("switching input source", "source", id)
	if err := s.provider.Switcher.SwitchInputSource(id); err != nil {
		s.log.Warnw("switch failed", "source", id, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := output.SwitchResult{
		OK:     true,
		Action: "switch",
		Source: id,
	}
	b, err := yaml.Marshal(result)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("ok: true\naction: switch\nsource: %s", id)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// stringParam extracts a string argument from a tool request's parameter map.
func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Numeric identifiers arrive as int/float from some clients
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}
