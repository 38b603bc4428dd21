package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-proxy/internal/models"
)

type stubData struct {
	bootstrap *models.Bootstrap
	fixtures  []models.Fixture
	err       error
}

func (s *stubData) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bootstrap, nil
}

func (s *stubData) Fixtures(ctx context.Context) ([]models.Fixture, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fixtures, nil
}

func gw(n int) *int { return &n }

func newTestTools(data *stubData) *Tools {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewTools(data, log)
}

func sampleData() *stubData {
	return &stubData{
		bootstrap: &models.Bootstrap{
			Teams: []models.Team{
				{ID: 1, Name: "Arsenal", StrengthAttackAway: 1300, StrengthDefenceAway: 1310},
				{ID: 2, Name: "Chelsea", StrengthAttackHome: 1200, StrengthDefenceHome: 1210, StrengthAttackAway: 1250, StrengthDefenceAway: 1260},
			},
			ElementTypes: []models.PositionType{
				{ID: 1, SingularNameShort: "GKP"},
				{ID: 3, SingularNameShort: "MID"},
			},
			Elements: []models.RawPlayer{
				{ID: 10, WebName: "Raya", Team: 1, ElementType: 1},
				{ID: 11, WebName: "Palmer", Team: 2, ElementType: 3},
				{ID: 12, WebName: "Saka", Team: 1, ElementType: 3},
			},
		},
		fixtures: []models.Fixture{
			{ID: 1, Event: gw(4), TeamH: 1, TeamA: 2, TeamHDifficulty: 3, TeamADifficulty: 4},
			{ID: 2, Event: gw(2), TeamH: 2, TeamA: 1, TeamHDifficulty: 4, TeamADifficulty: 3},
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewServer_RegistersTools(t *testing.T) {
	tools := newTestTools(sampleData())

	server := tools.NewServer()
	require.NotNil(t, server)

	names := make([]string, 0, 3)
	for _, info := range tools.Registry() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"list_players", "get_player", "team_fixtures"}, names)
	assert.NotNil(t, NewHTTPHandler(server))
}

func TestListPlayers_Filters(t *testing.T) {
	tools := newTestTools(sampleData())

	res, _, err := tools.listPlayers(context.Background(), nil, ListPlayersArgs{TeamID: 1, Position: "MID"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var resp models.PlayersResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	require.Len(t, resp.Players, 1)
	assert.Equal(t, "Saka", resp.Players[0].Name)
	assert.Len(t, resp.Teams, 2)
}

func TestListPlayers_UpstreamFailureIsGeneric(t *testing.T) {
	tools := newTestTools(&stubData{err: errors.New("dial tcp 10.0.0.1:443: connection refused")})

	res, _, err := tools.listPlayers(context.Background(), nil, ListPlayersArgs{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "failed to load data")
	assert.NotContains(t, text, "10.0.0.1")
}

func TestGetPlayer(t *testing.T) {
	tools := newTestTools(sampleData())

	res, _, err := tools.getPlayer(context.Background(), nil, GetPlayerArgs{PlayerID: 11})
	require.NoError(t, err)
	var view models.PlayerView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	assert.Equal(t, "Palmer", view.Name)
	assert.Equal(t, "Chelsea", view.Team)

	res, _, err = tools.getPlayer(context.Background(), nil, GetPlayerArgs{PlayerID: 999999})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "player not found")

	res, _, err = tools.getPlayer(context.Background(), nil, GetPlayerArgs{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestTeamFixtures(t *testing.T) {
	tools := newTestTools(sampleData())

	res, _, err := tools.teamFixtures(context.Background(), nil, TeamFixturesArgs{TeamID: 1, Limit: 1})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var resp models.TeamFixturesResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "Arsenal", resp.TeamName)
	require.Len(t, resp.Fixtures, 1)
	f := resp.Fixtures[0]
	require.NotNil(t, f.Gameweek)
	assert.Equal(t, 2, *f.Gameweek)
	assert.False(t, f.IsHome)
	assert.Equal(t, "Chelsea", f.OpponentName)
	require.NotNil(t, f.OpponentAttackStrength)
	assert.Equal(t, 1200, *f.OpponentAttackStrength)

	res, _, err = tools.teamFixtures(context.Background(), nil, TeamFixturesArgs{TeamID: 7})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "team not found")

	res, _, err = tools.teamFixtures(context.Background(), nil, TeamFixturesArgs{TeamID: -1})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
