package services

import "github.com/jstittsworth/fpl-proxy/internal/models"

const (
	UnknownTeamName = "Unknown"
	UnknownPosition = "UNK"
)

// ProjectPlayer maps an upstream element to the frontend shape. It never fails:
// a team or position type that is not in the lookup tables falls back to
// UnknownTeamName / UnknownPosition.
func ProjectPlayer(raw models.RawPlayer, teams []models.Team, positionTypes []models.PositionType) models.PlayerView {
	teamName := UnknownTeamName
	for _, t := range teams {
		if t.ID == raw.Team {
			teamName = t.Name
			break
		}
	}

	position := UnknownPosition
	for _, pt := range positionTypes {
		if pt.ID == raw.ElementType {
			position = pt.SingularNameShort
			break
		}
	}

	return models.PlayerView{
		ID:         raw.ID,
		Name:       raw.WebName,
		FirstName:  raw.FirstName,
		SecondName: raw.SecondName,
		Team:       teamName,
		TeamID:     raw.Team,
		Position:   position,
		Stats:      raw.PlayerStatistics,
	}
}

// ProjectPlayers projects every element, keeping upstream order.
func ProjectPlayers(bootstrap *models.Bootstrap) []models.PlayerView {
	out := make([]models.PlayerView, 0, len(bootstrap.Elements))
	for _, raw := range bootstrap.Elements {
		out = append(out, ProjectPlayer(raw, bootstrap.Teams, bootstrap.ElementTypes))
	}
	return out
}

// SummarizeTeams reduces teams to id/name pairs, keeping upstream order.
func SummarizeTeams(teams []models.Team) []models.TeamSummary {
	out := make([]models.TeamSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, models.TeamSummary{ID: t.ID, Name: t.Name})
	}
	return out
}

// BuildPlayersResponse is the /api/players payload.
func BuildPlayersResponse(bootstrap *models.Bootstrap) models.PlayersResponse {
	return models.PlayersResponse{
		Players: ProjectPlayers(bootstrap),
		Teams:   SummarizeTeams(bootstrap.Teams),
	}
}

// FindPlayerView looks up one element by exact id and projects it.
func FindPlayerView(bootstrap *models.Bootstrap, playerID int) (models.PlayerView, bool) {
	raw, ok := bootstrap.FindPlayer(playerID)
	if !ok {
		return models.PlayerView{}, false
	}
	return ProjectPlayer(raw, bootstrap.Teams, bootstrap.ElementTypes), true
}
