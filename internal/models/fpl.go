package models

import "encoding/json"

// Team is a Premier League club as listed in bootstrap-static.
type Team struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

// PositionType is an entry of bootstrap-static "element_types".
type PositionType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
	SingularName      string `json:"singular_name"`
	PluralNameShort   string `json:"plural_name_short"`
}

// PlayerStatistics holds the per-player statistics exactly as the upstream sends them.
// Values are kept raw so a field the upstream omits is omitted again on output.
type PlayerStatistics struct {
	NowCost                  json.RawMessage `json:"now_cost,omitempty"`
	TotalPoints              json.RawMessage `json:"total_points,omitempty"`
	EventPoints              json.RawMessage `json:"event_points,omitempty"`
	PointsPerGame            json.RawMessage `json:"points_per_game,omitempty"`
	Form                     json.RawMessage `json:"form,omitempty"`
	SelectedByPercent        json.RawMessage `json:"selected_by_percent,omitempty"`
	Minutes                  json.RawMessage `json:"minutes,omitempty"`
	Starts                   json.RawMessage `json:"starts,omitempty"`
	GoalsScored              json.RawMessage `json:"goals_scored,omitempty"`
	Assists                  json.RawMessage `json:"assists,omitempty"`
	CleanSheets              json.RawMessage `json:"clean_sheets,omitempty"`
	GoalsConceded            json.RawMessage `json:"goals_conceded,omitempty"`
	OwnGoals                 json.RawMessage `json:"own_goals,omitempty"`
	PenaltiesSaved           json.RawMessage `json:"penalties_saved,omitempty"`
	PenaltiesMissed          json.RawMessage `json:"penalties_missed,omitempty"`
	YellowCards              json.RawMessage `json:"yellow_cards,omitempty"`
	RedCards                 json.RawMessage `json:"red_cards,omitempty"`
	Saves                    json.RawMessage `json:"saves,omitempty"`
	Bonus                    json.RawMessage `json:"bonus,omitempty"`
	BPS                      json.RawMessage `json:"bps,omitempty"`
	Influence                json.RawMessage `json:"influence,omitempty"`
	Creativity               json.RawMessage `json:"creativity,omitempty"`
	Threat                   json.RawMessage `json:"threat,omitempty"`
	ICTIndex                 json.RawMessage `json:"ict_index,omitempty"`
	ExpectedGoals            json.RawMessage `json:"expected_goals,omitempty"`
	ExpectedAssists          json.RawMessage `json:"expected_assists,omitempty"`
	ExpectedGoalInvolvements json.RawMessage `json:"expected_goal_involvements,omitempty"`
	ExpectedGoalsConceded    json.RawMessage `json:"expected_goals_conceded,omitempty"`
	Status                   json.RawMessage `json:"status,omitempty"`
	News                     json.RawMessage `json:"news,omitempty"`
	ChanceOfPlayingNextRound json.RawMessage `json:"chance_of_playing_next_round,omitempty"`
}

// RawPlayer is an entry of bootstrap-static "elements".
type RawPlayer struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	WebName     string `json:"web_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`

	PlayerStatistics
}

// Bootstrap is the subset of /bootstrap-static/ the proxy reads.
type Bootstrap struct {
	Elements     []RawPlayer    `json:"elements"`
	Teams        []Team         `json:"teams"`
	ElementTypes []PositionType `json:"element_types"`
}

// FindPlayer returns the player with the given id.
func (b *Bootstrap) FindPlayer(id int) (RawPlayer, bool) {
	for _, p := range b.Elements {
		if p.ID == id {
			return p, true
		}
	}
	return RawPlayer{}, false
}

// FindTeam returns the team with the given id.
func (b *Bootstrap) FindTeam(id int) (Team, bool) {
	for _, t := range b.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Fixture is an entry of /fixtures/. Event and KickoffTime are null for
// fixtures that have not been scheduled into a gameweek yet.
type Fixture struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	KickoffTime     *string `json:"kickoff_time"`
}

// PlayerView is the projected player returned to the frontend.
type PlayerView struct {
	ID         int              `json:"id"`
	Name       string           `json:"name"`
	FirstName  string           `json:"first_name"`
	SecondName string           `json:"second_name"`
	Team       string           `json:"team"`
	TeamID     int              `json:"team_id"`
	Position   string           `json:"position"`
	Stats      PlayerStatistics `json:"stats"`
}

type TeamSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PlayersResponse struct {
	Players []PlayerView  `json:"players"`
	Teams   []TeamSummary `json:"teams"`
}

// FixtureView is one upcoming fixture seen from a single team's side.
// Opponent strengths are nil when the opponent is not in the team list.
type FixtureView struct {
	Gameweek                *int    `json:"gameweek"`
	IsHome                  bool    `json:"is_home"`
	OpponentID              int     `json:"opponent_id"`
	OpponentName            string  `json:"opponent_name"`
	Difficulty              int     `json:"difficulty"`
	OpponentDefenceStrength *int    `json:"opponent_defence_strength"`
	OpponentAttackStrength  *int    `json:"opponent_attack_strength"`
	KickoffTime             *string `json:"kickoff_time"`
}

type TeamFixturesResponse struct {
	TeamID   int           `json:"team_id"`
	TeamName string        `json:"team_name"`
	Fixtures []FixtureView `json:"fixtures"`
}
