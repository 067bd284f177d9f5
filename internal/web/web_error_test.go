package web_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/teamdraft/internal/model"
)

func TestFlashMessageDisplayedOnError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addPlayers("Solo")

	rr := ts.post("/draw", url.Values{"mode": {"instant"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash.flash-error", model.ErrNotEnoughPlayers.Error())

	// Flash is shown once
	doc = parseHTML(ts.get("/").Body)
	assert.Equal(t, 0, doc.Find(".flash").Length())
}

func TestHTMXErrorsUseTriggerHeader(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.postHTMX("/pause", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)

	var trigger map[string]string
	require.NoError(t, json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &trigger))
	assert.Equal(t, model.ErrNothingToPause.Error(), trigger["flash"])
}

func TestInvalidFormValues(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addPlayers("A", "B")

	tests := []struct {
		path string
		form url.Values
		want error
	}{
		{"/draw", url.Values{"mode": {"lottery"}}, model.ErrInvalidDrawMode},
		{"/toss", url.Values{"side_mode": {"dice"}}, model.ErrInvalidSideMode},
		{"/toss/call", url.Values{"call": {"edge"}}, model.ErrInvalidCoinFace},
		{"/toss/side", url.Values{"side": {"middle"}}, model.ErrInvalidSide},
		{"/settings/map-count", url.Values{"map_count": {"4"}}, model.ErrInvalidMapCount},
		{"/roster/remove", url.Values{"name": {"Ghost"}}, model.ErrPlayerMissing},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := ts.postHTMX(tt.path, tt.form)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("HX-Trigger"), tt.want.Error())
		})
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/lobby/ABC")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
