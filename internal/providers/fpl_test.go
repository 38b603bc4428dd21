package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bootstrapBody = `{
  "elements": [
    {"id": 1, "first_name": "Bukayo", "second_name": "Saka", "web_name": "Saka", "team": 1, "element_type": 3,
     "now_cost": 100, "total_points": 180, "expected_goals": "12.40", "chance_of_playing_next_round": null}
  ],
  "teams": [
    {"id": 1, "name": "Arsenal", "short_name": "ARS", "strength_attack_home": 1300, "strength_attack_away": 1250,
     "strength_defence_home": 1320, "strength_defence_away": 1280}
  ],
  "element_types": [{"id": 3, "singular_name_short": "MID", "singular_name": "Midfielder"}],
  "events": []
}`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestFetchBootstrap_DecodesUpstreamFields(t *testing.T) {
	var gotPath, gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(bootstrapBody))
	}))
	defer srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL + "/", UserAgent: "test-agent", Logger: testLogger()})
	bootstrap, err := client.FetchBootstrap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/bootstrap-static/", gotPath)
	assert.Equal(t, "test-agent", gotAgent)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, bootstrap.Elements, 1)
	player := bootstrap.Elements[0]
	assert.Equal(t, "Saka", player.WebName)
	assert.Equal(t, 1, player.Team)
	assert.Equal(t, 3, player.ElementType)
	assert.JSONEq(t, `100`, string(player.NowCost))
	assert.JSONEq(t, `"12.40"`, string(player.ExpectedGoals))
	assert.Equal(t, "null", string(player.ChanceOfPlayingNextRound))
	assert.Nil(t, player.Minutes)

	require.Len(t, bootstrap.Teams, 1)
	assert.Equal(t, 1250, bootstrap.Teams[0].StrengthAttackAway)
	require.Len(t, bootstrap.ElementTypes, 1)
	assert.Equal(t, "MID", bootstrap.ElementTypes[0].SingularNameShort)
}

func TestFetchFixtures_NullableGameweek(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("future"))
		w.Write([]byte(`[
			{"id": 10, "event": 7, "team_h": 1, "team_a": 2, "team_h_difficulty": 3, "team_a_difficulty": 4, "kickoff_time": "2025-10-04T14:00:00Z"},
			{"id": 11, "event": null, "team_h": 2, "team_a": 1, "team_h_difficulty": 4, "team_a_difficulty": 3, "kickoff_time": null}
		]`))
	}))
	defer srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Logger: testLogger()})
	fixtures, err := client.FetchFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	require.NotNil(t, fixtures[0].Event)
	assert.Equal(t, 7, *fixtures[0].Event)
	require.NotNil(t, fixtures[0].KickoffTime)
	assert.Nil(t, fixtures[1].Event)
	assert.Nil(t, fixtures[1].KickoffTime)
	assert.Equal(t, 4, fixtures[1].TeamHDifficulty)
}

func TestFetch_Non2xxCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Logger: testLogger()})
	_, err := client.FetchBootstrap(context.Background())
	require.Error(t, err)

	var statusErr *UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetch_TransportErrorCarriesCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: url, Timeout: time.Second, Logger: testLogger()})
	_, err := client.FetchFixtures(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	var statusErr *UpstreamStatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [`))
	}))
	defer srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Logger: testLogger()})
	_, err := client.FetchBootstrap(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstreamUnavailable)
}

type rejectingBreaker struct{}

func (rejectingBreaker) Execute(string, func() (interface{}, error)) (interface{}, error) {
	return nil, errors.New("circuit breaker is open")
}

type passthroughBreaker struct{ calls int }

func (b *passthroughBreaker) Execute(_ string, fn func() (interface{}, error)) (interface{}, error) {
	b.calls++
	return fn()
}

func TestFetch_BreakerRejectionIsUpstreamUnavailable(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Breaker: rejectingBreaker{}, Logger: testLogger()})
	_, err := client.FetchFixtures(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, 0, hits)
}

func TestFetch_BreakerPassesCallsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	breaker := &passthroughBreaker{}
	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Breaker: breaker, Logger: testLogger()})
	fixtures, err := client.FetchFixtures(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fixtures)
	assert.Equal(t, 1, breaker.calls)
}

func TestFetch_CancelledContextSkipsBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	breaker := &passthroughBreaker{}
	client := NewFPLClient(FPLClientConfig{BaseURL: srv.URL, Breaker: breaker, Logger: testLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.FetchFixtures(ctx)
	assert.ErrorIs(t, err, ErrCallerGone)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, 0, breaker.calls)
}
