package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/results/update", `{"teamId":1,"eventId":1,"medal":"gold"}`},
		{http.MethodDelete, "/api/results/1", ""},
		{http.MethodPost, "/api/results/publish", `{"publish":true}`},
		{http.MethodPost, "/api/results/publish/schedule", `{"publishAt":"2030-01-01T00:00:00Z"}`},
		{http.MethodPost, "/api/results/publish/cancel", ""},
		{http.MethodPost, "/api/events", `{"name":"Chess","categoryId":1}`},
		{http.MethodPost, "/api/teams/1/icon", `{"icon":"data:image/png;base64,aWNvbg=="}`},
	}
	for _, tc := range cases {
		resp, _ := doRequest(t, app, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestStandingsGatedUntilPublished(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	// Record a gold for team 1 in event 5.
	resp, _ := doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":1,"eventId":5,"medal":"gold"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Hidden: a viewer still sees every team, but zeroed and in team order.
	resp, raw := doRequest(t, app, http.MethodGet, "/api/standings", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decodeArray(t, raw)
	require.Len(t, rows, 12)
	for _, r := range rows {
		row := r.(map[string]any)
		assert.EqualValues(t, 0, row["totalPoints"])
		assert.EqualValues(t, 0, row["goldCount"])
	}
	assert.EqualValues(t, 1, rows[0].(map[string]any)["teamId"])

	// The admin sees the live tally regardless of the gate.
	resp, raw = doRequest(t, app, http.MethodGet, "/api/standings", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminRows := decodeArray(t, raw)
	top := adminRows[0].(map[string]any)
	assert.EqualValues(t, 1, top["teamId"])
	assert.EqualValues(t, 10, top["totalPoints"])
	assert.EqualValues(t, 1, top["goldCount"])
	adminBody := raw

	// Publish: viewers and admins now get the identical payload.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish", `{"publish":true}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/standings", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(adminBody), string(raw))

	// Hide again: back to zeroed rows, no snapshot of the published view.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish", `{"publish":false}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, raw = doRequest(t, app, http.MethodGet, "/api/standings", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, r := range decodeArray(t, raw) {
		assert.EqualValues(t, 0, r.(map[string]any)["totalPoints"])
	}
}

func TestEventResultsGatedUntilPublished(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":2,"eventId":6,"medal":"gold"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Hidden: event identity only, empty results, no medal summary.
	resp, raw := doRequest(t, app, http.MethodGet, "/api/events/6/results", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeObject(t, raw)
	assert.EqualValues(t, 6, view["eventId"])
	assert.Equal(t, "Quiz Bowl", view["eventName"])
	results, ok := view["results"].([]any)
	require.True(t, ok, "results must be an array, not null")
	assert.Empty(t, results)
	assert.NotContains(t, view, "gold")
	assert.NotContains(t, view, "silver")
	assert.NotContains(t, view, "bronze")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish", `{"publish":true}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/events/6/results", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeObject(t, raw)
	// 12 seeded no_entry rows plus the recorded gold.
	assert.Len(t, view["results"], 13)
	gold, ok := view["gold"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, gold["teamId"])
	assert.Equal(t, "Ninja Turquoise", gold["teamName"])
}

func TestEventResultsNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/events/999/results", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/events/abc/results", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateResultValidation(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":1,"eventId":1,"medal":"platinum"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeObject(t, raw)
	assert.Equal(t, "Invalid request data", body["message"])
	assert.NotEmpty(t, body["errors"])

	resp, raw = doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"medal":"gold"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, decodeObject(t, raw)["errors"], 2)

	resp, raw = doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":1,"eventId":999,"medal":"gold"}`, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Event not found", decodeObject(t, raw)["message"])

	resp, raw = doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":999,"eventId":1,"medal":"gold"}`, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Team not found", decodeObject(t, raw)["message"])
}

func TestCreateResultAllowsDuplicateMedals(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":3,"eventId":7,"medal":"gold"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decodeObject(t, raw)["result"].(map[string]any)

	// Same team, same event, same medal — legal, a team may field several
	// entrants.
	resp, raw = doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":3,"eventId":7,"medal":"gold"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeObject(t, raw)
	second := body["result"].(map[string]any)

	assert.NotEqual(t, first["id"], second["id"])
	assert.EqualValues(t, 10, second["points"])

	// Convenience payload carries fresh aggregates.
	standings := body["standings"].([]any)
	top := standings[0].(map[string]any)
	assert.EqualValues(t, 3, top["teamId"])
	assert.EqualValues(t, 20, top["totalPoints"])
	assert.EqualValues(t, 2, top["goldCount"])
	require.Contains(t, body, "eventResults")
}

func TestDeleteResult(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/results/update",
		`{"teamId":4,"eventId":8,"medal":"silver"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeObject(t, raw)["result"].(map[string]any)
	resultID := fmt.Sprintf("%.0f", created["id"].(float64))

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/results/"+resultID, "", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Tally reverted.
	resp, raw = doRequest(t, app, http.MethodGet, "/api/standings", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, r := range decodeArray(t, raw) {
		row := r.(map[string]any)
		if row["teamId"].(float64) == 4 {
			assert.EqualValues(t, 0, row["totalPoints"])
			assert.EqualValues(t, 0, row["silverCount"])
		}
	}

	// Gone for good.
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/results/"+resultID, "", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/results/abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetPublishedValidation(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/results/publish", `{"publish":"yes"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/results/publish", `{"publish":true}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeObject(t, raw)["published"])

	resp, raw = doRequest(t, app, http.MethodGet, "/api/results/published", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeObject(t, raw)["published"])
}

func TestSchedulePublish(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/results/publish/schedule",
		`{"publishAt":"2001-01-01T00:00:00Z"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "past times are rejected")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish/schedule",
		`{"publishAt":"not-a-time"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish/cancel", "", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "nothing scheduled yet")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish/schedule",
		`{"publishAt":"2030-01-01T00:00:00Z"}`, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/results/publish/cancel", "", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateEvent(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/events", `{"name":"Chess"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/events",
		`{"name":"Chess","categoryId":999}`, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/events",
		`{"name":"Chess Blitz","categoryId":2}`, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	event := decodeObject(t, raw)
	assert.Equal(t, "Chess Blitz", event["name"])
	assert.Equal(t, "chess-blitz", event["slug"])
	assert.EqualValues(t, 2, event["categoryId"])

	resp, raw = doRequest(t, app, http.MethodGet, "/api/events", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeArray(t, raw), 22)
}

func TestGetCategoriesWithEvents(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/categories", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categories := decodeArray(t, raw)
	require.Len(t, categories, 6)

	first := categories[0].(map[string]any)
	category := first["category"].(map[string]any)
	assert.Equal(t, "VISUAL ARTS", category["name"])
	assert.Len(t, first["events"], 5)
}

func TestUpdateTeamIcon(t *testing.T) {
	app := newTestApp(t)
	cookie := loginAdmin(t, app)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/teams/999/icon",
		`{"icon":"data:image/png;base64,aWNvbg=="}`, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/teams/1/icon", `{"icon":""}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/teams/abc/icon",
		`{"icon":"data:image/png;base64,aWNvbg=="}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	icon := "data:image/png;base64,aWNvbg=="
	resp, raw := doRequest(t, app, http.MethodPost, "/api/teams/1/icon",
		`{"icon":"`+icon+`"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	team := decodeObject(t, raw)["team"].(map[string]any)
	assert.Equal(t, icon, team["icon"])

	// Icons stay visible to viewers even while scores are hidden.
	resp, raw = doRequest(t, app, http.MethodGet, "/api/standings", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	row := decodeArray(t, raw)[0].(map[string]any)
	assert.EqualValues(t, 1, row["teamId"])
	assert.Equal(t, icon, row["icon"])
	assert.EqualValues(t, 0, row["totalPoints"])
}

func TestGetTeams(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/teams", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	teams := decodeArray(t, raw)
	require.Len(t, teams, 12)

	first := teams[0].(map[string]any)
	assert.Equal(t, "Royal Blue Dragons", first["name"])
	assert.Equal(t, "dragon", first["color"])
	assert.Equal(t, "royal-blue-dragons", first["slug"])
}
