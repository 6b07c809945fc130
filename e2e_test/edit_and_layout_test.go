//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scorefall/scorefall-ink/cmd"
	"github.com/scorefall/scorefall-ink/engrave"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/scof"
	"github.com/scorefall/scorefall-ink/score"
	"github.com/stretchr/testify/assert"
)

func makeScofBody() io.Reader {
	f := &scof.File{
		Title: "e2e",
		Sigs: []model.Sig{{
			Key:   0,
			Time:  model.TimeSig{Beats: 4, Unit: 4},
			Tempo: 120,
			Swing: model.DefaultSwing,
		}},
		Bars: []score.BarSource{
			{Sig: intPtr(0), Chans: []score.ChanSource{{Notes: "C4D4E4F4"}}},
			{Chans: []score.ChanSource{{Notes: "G2A2"}}},
			{Chans: []score.ChanSource{{Notes: "%"}}},
		},
	}
	var buf bytes.Buffer
	if err := scof.Save(&buf, f); err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(buf.Bytes())
}

func intPtr(n int) *int { return &n }

func createScore(t *testing.T, router http.Handler) string {
	req := httptest.NewRequest(http.MethodPost, "/score", makeScofBody())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert.Equal(t, 200, resp.StatusCode, string(respBody))

	var created model.CreateScoreResponse
	err := json.Unmarshal(respBody, &created)
	if err != nil {
		panic(err.Error())
	}
	return created.ID
}

func TestCreateAndLayoutE2E(t *testing.T) {
	router := cmd.NewRouter()
	id := createScore(t, router)

	req := httptest.NewRequest(http.MethodGet, "/score/"+id+"/layout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var lines []engrave.Line
	err := json.Unmarshal(respBody, &lines)
	if err != nil {
		panic(err.Error())
	}
	assert.NotEmpty(lines)
	bars := 0
	for _, line := range lines {
		bars += len(line.Bars)
	}
	assert.Equal(3, bars)
}

func TestUpdateChanE2E(t *testing.T) {
	router := cmd.NewRouter()
	id := createScore(t, router)

	update := model.UpdateChanRequestBody{Notes: "C2E2"}
	data, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPut, "/score/"+id+"/bar/1/chan/0", bytes.NewReader(data))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)

	// Relayout is debounced.
	time.Sleep(250 * time.Millisecond)

	req = httptest.NewRequest(http.MethodGet, "/score/"+id+"/svg", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(respBody), "<svg")
}

func TestUpdateChanRejectsBadBeatE2E(t *testing.T) {
	router := cmd.NewRouter()
	id := createScore(t, router)

	// Only two beats in a 4/4 bar.
	update := model.UpdateChanRequestBody{Notes: "C4D4"}
	data, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPut, "/score/"+id+"/bar/0/chan/0", bytes.NewReader(data))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 400, resp.StatusCode)

	var errs []model.BarErrorBody
	err := json.Unmarshal(respBody, &errs)
	if err != nil {
		panic(err.Error())
	}
	assert.Len(t, errs, 1)
	assert.Equal(t, 0, errs[0].Bar)
	assert.Equal(t, 0, errs[0].Chan)
}
