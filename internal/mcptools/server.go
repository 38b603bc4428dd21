// Package mcptools exposes the proxy's read operations as Model Context Protocol tools,
// so LLM clients can query the same cached data the frontend sees.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/models"
	"github.com/jstittsworth/fpl-proxy/internal/services"
)

const (
	serverName    = "fpl-proxy"
	serverVersion = "1.0.0"
)

type ListPlayersArgs struct {
	TeamID   int    `json:"team_id,omitempty" jsonschema:"Only players of this team id (0 = all teams)"`
	Position string `json:"position,omitempty" jsonschema:"Only players with this position code: GKP, DEF, MID or FWD"`
}

type GetPlayerArgs struct {
	PlayerID int `json:"player_id" jsonschema:"FPL element id (required)"`
}

type TeamFixturesArgs struct {
	TeamID int `json:"team_id" jsonschema:"FPL team id (required)"`
	Limit  int `json:"limit,omitempty" jsonschema:"Number of upcoming fixtures (default 5)"`
}

// ToolInfo is the name/description pair listed for each registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools holds the data source the MCP tool handlers read from.
type Tools struct {
	data     services.FPLDataSource
	logger   *logrus.Logger
	registry []ToolInfo
}

func NewTools(data services.FPLDataSource, logger *logrus.Logger) *Tools {
	return &Tools{data: data, logger: logger}
}

// NewServer registers every tool on a fresh MCP server.
func (t *Tools) NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	t.registry = t.registry[:0]

	addTool(t, server, &mcp.Tool{
		Name:        "list_players",
		Description: "All FPL players with team, position and season statistics",
	}, t.listPlayers)

	addTool(t, server, &mcp.Tool{
		Name:        "get_player",
		Description: "One FPL player by element id",
	}, t.getPlayer)

	addTool(t, server, &mcp.Tool{
		Name:        "team_fixtures",
		Description: "Next fixtures of a team with difficulty and opponent strength at that venue",
	}, t.teamFixtures)

	return server
}

// Registry lists the tools registered by the last NewServer call.
func (t *Tools) Registry() []ToolInfo {
	out := make([]ToolInfo, len(t.registry))
	copy(out, t.registry)
	return out
}

// NewHTTPHandler serves server over streamable HTTP with plain JSON responses.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func addTool[T any](t *Tools, server *mcp.Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	t.registry = append(t.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (t *Tools) listPlayers(ctx context.Context, _ *mcp.CallToolRequest, args ListPlayersArgs) (*mcp.CallToolResult, any, error) {
	bootstrap, err := t.data.Bootstrap(ctx)
	if err != nil {
		return t.toolError("list_players", err), nil, nil
	}

	resp := services.BuildPlayersResponse(bootstrap)
	if args.TeamID != 0 || args.Position != "" {
		filtered := make([]models.PlayerView, 0, len(resp.Players))
		for _, p := range resp.Players {
			if args.TeamID != 0 && p.TeamID != args.TeamID {
				continue
			}
			if args.Position != "" && p.Position != args.Position {
				continue
			}
			filtered = append(filtered, p)
		}
		resp.Players = filtered
	}
	return toolJSON(resp)
}

func (t *Tools) getPlayer(ctx context.Context, _ *mcp.CallToolRequest, args GetPlayerArgs) (*mcp.CallToolResult, any, error) {
	if args.PlayerID <= 0 {
		return toolMessage(fmt.Errorf("player_id is required")), nil, nil
	}

	bootstrap, err := t.data.Bootstrap(ctx)
	if err != nil {
		return t.toolError("get_player", err), nil, nil
	}

	player, ok := services.FindPlayerView(bootstrap, args.PlayerID)
	if !ok {
		return toolMessage(fmt.Errorf("player not found: %d", args.PlayerID)), nil, nil
	}
	return toolJSON(player)
}

func (t *Tools) teamFixtures(ctx context.Context, _ *mcp.CallToolRequest, args TeamFixturesArgs) (*mcp.CallToolResult, any, error) {
	if args.TeamID <= 0 {
		return toolMessage(fmt.Errorf("team_id must be a positive number")), nil, nil
	}

	bootstrap, fixtures, err := services.LoadBootstrapAndFixtures(ctx, t.data)
	if err != nil {
		return t.toolError("team_fixtures", err), nil, nil
	}

	resp, ok := services.BuildTeamFixtures(bootstrap, fixtures, args.TeamID, args.Limit)
	if !ok {
		return toolMessage(fmt.Errorf("team not found: %d", args.TeamID)), nil, nil
	}
	return toolJSON(resp)
}

// toolError logs an upstream failure and returns a generic error result.
func (t *Tools) toolError(tool string, err error) *mcp.CallToolResult {
	t.logger.WithFields(logrus.Fields{
		"component": "mcp",
		"tool":      tool,
	}).WithError(err).Error("Tool call failed")
	return toolMessage(fmt.Errorf("failed to load data from the upstream API"))
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolMessage(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolMessage(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
