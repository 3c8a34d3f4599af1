// Package mcp implements the gateway client contract over MCP streamable
// HTTP: each remote provider is one MCP server exposing its abilities as
// tools. This is the reference transport; the engine itself only depends on
// the gateway contract.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/telaro/caseflow/service/gateway"
)

const (
	clientName      = "caseflow"
	clientVersion   = "1.0.0"
	protocolVersion = "2025-03-26"
)

// Client reaches one provider's abilities over MCP streamable HTTP.
type Client struct {
	provider gateway.Provider
	client   *mcpclient.Client

	mux       sync.Mutex
	connected bool
}

// New builds a client for the given provider base URL. The connection is
// established lazily on the first call, or eagerly via Connect.
func New(provider gateway.Provider, baseURL string) (*Client, error) {
	transportURL := strings.TrimSuffix(baseURL, "/") + "/mcp"
	c, err := mcpclient.NewStreamableHttpClient(transportURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client for %v: %w", provider, err)
	}
	return &Client{provider: provider, client: c}, nil
}

// Connect starts the transport and runs the MCP initialize handshake.
func (c *Client) Connect(ctx context.Context) error {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.connect(ctx)
}

func (c *Client) connect(ctx context.Context) error {
	if c.connected {
		return nil
	}
	if err := c.client.Start(ctx); err != nil {
		return gateway.NewUnavailableError(c.provider, "", err)
	}
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = protocolVersion
	initReq.Params.Capabilities = mcp.ClientCapabilities{}
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	if _, err := c.client.Initialize(ctx, initReq); err != nil {
		return gateway.NewUnavailableError(c.provider, "", err)
	}
	c.connected = true
	return nil
}

// Close shuts the underlying transport down.
func (c *Client) Close() error {
	c.mux.Lock()
	defer c.mux.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false
	return c.client.Close()
}

// CallAbility invokes the named tool once and decodes its reply into a result
// mapping. No retries are attempted.
func (c *Client) CallAbility(ctx context.Context, ability string, params map[string]interface{}) (map[string]interface{}, error) {
	c.mux.Lock()
	if err := c.connect(ctx); err != nil {
		c.mux.Unlock()
		return nil, err
	}
	c.mux.Unlock()

	request := mcp.CallToolRequest{}
	request.Params.Name = ability
	request.Params.Arguments = params

	result, err := c.client.CallTool(ctx, request)
	if err != nil {
		return nil, gateway.NewUnavailableError(c.provider, ability, err)
	}
	if result.IsError {
		return nil, gateway.NewAbilityError(c.provider, ability, fmt.Errorf("%s", textOf(result)))
	}
	return c.decode(ability, result)
}

// decode extracts the result mapping: structured content when the server sent
// it, otherwise the first text content parsed as a JSON object.
func (c *Client) decode(ability string, result *mcp.CallToolResult) (map[string]interface{}, error) {
	if structured, ok := result.StructuredContent.(map[string]interface{}); ok {
		return structured, nil
	}
	text := textOf(result)
	if text == "" {
		return nil, gateway.NewMalformedResultError(c.provider, ability, fmt.Errorf("reply carries no content"))
	}
	var mapping map[string]interface{}
	if err := json.Unmarshal([]byte(text), &mapping); err != nil {
		return nil, gateway.NewMalformedResultError(c.provider, ability, err)
	}
	return mapping, nil
}

func textOf(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
