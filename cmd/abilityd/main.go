// Package main provides abilityd, a pair of demo MCP ability servers. It
// exposes the COMMON and ATLAS ability sets over streamable HTTP so a
// caseflow run can exercise the real gateway client end to end.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/telaro/caseflow/service/gateway"
	"github.com/telaro/caseflow/service/gateway/memory"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		commonAddr string
		atlasAddr  string
	)
	cmd := &cobra.Command{
		Use:          "abilityd",
		Short:        "Serve the demo COMMON and ATLAS ability providers over MCP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), commonAddr, atlasAddr)
		},
	}
	cmd.Flags().StringVar(&commonAddr, "common-addr", ":8001", "listen address for the COMMON provider")
	cmd.Flags().StringVar(&atlasAddr, "atlas-addr", ":8002", "listen address for the ATLAS provider")
	return cmd
}

func serve(ctx context.Context, commonAddr, atlasAddr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	errors := make(chan error, 2)
	servers := []*server.StreamableHTTPServer{
		startProvider(gateway.ProviderCommon, commonAddr, logger, errors),
		startProvider(gateway.ProviderAtlas, atlasAddr, logger, errors),
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errors:
		return err
	case sig := <-signals:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
	}
	for _, httpServer := range servers {
		if err := httpServer.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown failed", "error", err)
		}
	}
	return nil
}

func startProvider(provider gateway.Provider, addr string, logger *slog.Logger, errors chan<- error) *server.StreamableHTTPServer {
	httpServer := server.NewStreamableHTTPServer(newProviderServer(provider))
	go func() {
		logger.Info("ability server listening", "provider", string(provider), "addr", addr)
		if err := httpServer.Start(addr); err != nil {
			errors <- err
		}
	}()
	return httpServer
}

// newProviderServer builds an MCP server exposing every ability the provider
// owns, backed by the same canned handlers the in-process mock uses.
func newProviderServer(provider gateway.Provider) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		string(provider),
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	for ability, handler := range memory.Abilities(provider) {
		tool := mcp.NewTool(ability,
			mcp.WithDescription("Demo "+ability+" ability on the "+string(provider)+" server"),
		)
		mcpServer.AddTool(tool, newToolHandler(handler))
	}
	return mcpServer
}

func newToolHandler(handler memory.Handler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := map[string]interface{}{}
		if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
			params = args
		}
		data, err := json.Marshal(handler(params))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
