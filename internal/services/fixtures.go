package services

import (
	"sort"

	"github.com/jstittsworth/fpl-proxy/internal/models"
)

const (
	DefaultFixtureLimit = 5

	// UnscheduledGameweek orders fixtures without a gameweek after every scheduled one.
	UnscheduledGameweek = 999
)

// TeamsByID indexes teams by id.
func TeamsByID(teams []models.Team) map[int]models.Team {
	out := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		out[t.ID] = t
	}
	return out
}

// SelectUpcomingFixtures returns the next limit fixtures of teamID ordered by gameweek,
// unscheduled ones last. Ties keep their upstream order.
//
// Opponent strengths are taken for the venue the opponent plays at: when teamID is at
// home the opponent's away ratings are reported, and the other way round.
func SelectUpcomingFixtures(fixtures []models.Fixture, teamID int, teamsByID map[int]models.Team, limit int) []models.FixtureView {
	if limit <= 0 {
		limit = DefaultFixtureLimit
	}

	own := make([]models.Fixture, 0, limit)
	for _, f := range fixtures {
		if f.TeamH == teamID || f.TeamA == teamID {
			own = append(own, f)
		}
	}

	sort.SliceStable(own, func(i, j int) bool {
		return gameweekOrder(own[i]) < gameweekOrder(own[j])
	})

	if len(own) > limit {
		own = own[:limit]
	}

	out := make([]models.FixtureView, 0, len(own))
	for _, f := range own {
		out = append(out, viewFixture(f, teamID, teamsByID))
	}
	return out
}

func gameweekOrder(f models.Fixture) int {
	if f.Event == nil {
		return UnscheduledGameweek
	}
	return *f.Event
}

func viewFixture(f models.Fixture, teamID int, teamsByID map[int]models.Team) models.FixtureView {
	isHome := f.TeamH == teamID

	opponentID, difficulty := f.TeamH, f.TeamADifficulty
	if isHome {
		opponentID, difficulty = f.TeamA, f.TeamHDifficulty
	}

	view := models.FixtureView{
		Gameweek:     copyInt(f.Event),
		IsHome:       isHome,
		OpponentID:   opponentID,
		OpponentName: UnknownTeamName,
		Difficulty:   difficulty,
		KickoffTime:  copyString(f.KickoffTime),
	}

	opponent, ok := teamsByID[opponentID]
	if !ok {
		return view
	}

	view.OpponentName = opponent.Name
	if isHome {
		view.OpponentAttackStrength = intPtr(opponent.StrengthAttackAway)
		view.OpponentDefenceStrength = intPtr(opponent.StrengthDefenceAway)
	} else {
		view.OpponentAttackStrength = intPtr(opponent.StrengthAttackHome)
		view.OpponentDefenceStrength = intPtr(opponent.StrengthDefenceHome)
	}
	return view
}

// BuildTeamFixtures is the /api/team-fixtures payload. ok is false when teamID is
// not in the bootstrap team list.
func BuildTeamFixtures(bootstrap *models.Bootstrap, fixtures []models.Fixture, teamID, limit int) (models.TeamFixturesResponse, bool) {
	team, ok := bootstrap.FindTeam(teamID)
	if !ok {
		return models.TeamFixturesResponse{}, false
	}
	return models.TeamFixturesResponse{
		TeamID:   team.ID,
		TeamName: team.Name,
		Fixtures: SelectUpcomingFixtures(fixtures, teamID, TeamsByID(bootstrap.Teams), limit),
	}, true
}

func intPtr(v int) *int {
	return &v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return intPtr(*v)
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
