package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CFBDClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewCFBDClient("test-key", 100, 5*time.Second, 3, logger)
	client.baseURL = server.URL
	return client
}

func TestGetGamesParsesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 401628319, "season": 2024, "week": 1, "seasonType": "regular",
			"completed": true, "homeId": 194, "homeTeam": "Ohio State",
			"homePoints": 52, "homeLineScores": [14, 21, 10, 7], "homePregameElo": 1935,
			"awayId": 2483, "awayTeam": "Akron", "awayPoints": 6
		}]`))
	})

	games, err := client.GetGames(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, int64(401628319), game.ID)
	assert.Equal(t, "Ohio State", game.HomeTeam)
	require.NotNil(t, game.HomePoints)
	assert.Equal(t, 52, *game.HomePoints)
	require.NotNil(t, game.HomePregameElo)
	assert.Equal(t, 1935.0, *game.HomePregameElo)
	assert.Nil(t, game.AwayPregameElo)
	assert.JSONEq(t, `[14,21,10,7]`, string(game.HomeLineScores))
}

func TestGetRankingsFlattensPolls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"season": 2024, "seasonType": "regular", "week": 1,
			"polls": [{
				"poll": "AP Top 25",
				"ranks": [
					{"rank": 1, "teamId": 61, "school": "Georgia"},
					{"rank": 2, "teamId": 194, "school": "Ohio State"}
				]
			}]
		}]`))
	})

	rankings, err := client.GetRankings(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, "AP Top 25", rankings[0].Poll)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, int64(194), rankings[1].TeamID)
}

func TestGetLinesFlattensProviders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 401628319, "season": 2024, "seasonType": "regular", "week": 1,
			"homeTeamId": 194, "homeTeam": "Ohio State",
			"awayTeamId": 2483, "awayTeam": "Akron",
			"lines": [
				{"provider": "DraftKings", "spread": -48.5, "overUnder": 59.5},
				{"provider": "Bovada", "spread": -49.0}
			]
		}]`))
	})

	lines, err := client.GetLines(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "DraftKings", lines[0].Provider)
	require.NotNil(t, lines[0].Spread)
	assert.Equal(t, -48.5, *lines[0].Spread)
	assert.Nil(t, lines[1].OverUnder)
	assert.Equal(t, int64(401628319), lines[1].GameID)
}

func TestGetDrivesSkipsFailedWeeks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("week") == "1" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": "4016283191", "gameId": 401628319, "offense": "Ohio State",
			"defense": "Akron", "isHomeOffense": true, "scoring": true,
			"plays": 9, "yards": 75
		}]`))
	})

	drives, err := client.GetDrives(context.Background(), 2024, 2)
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, int64(4016283191), drives[0].ID)
	assert.Equal(t, 2, drives[0].Week)
	assert.True(t, drives[0].IsHomeOffense)
}

func TestGetGamesErrorOnBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetGames(context.Background(), 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
