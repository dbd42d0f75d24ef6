package resource

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yarf-framework/yarf"

	"github.com/kaborder/crossingsim/sim"
	"github.com/kaborder/crossingsim/types"
)

func testServer(t *testing.T) (*httptest.Server, *sim.Engine) {
	engine, err := sim.New(sim.Config{
		RNG:            rand.New(rand.NewSource(1)),
		Now:            func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) },
		CrossingPoints: sim.DefaultCrossingPoints(),
		Lanes:          sim.DefaultLanes(),
	})
	require.NoError(t, err)

	y := yarf.New()
	y.Add("/v1/crossings", new(Crossing).WithEngine(engine))
	y.Add("/v1/crossings/:id", new(Crossing).WithEngine(engine))
	y.Add("/v1/lanes/:id", new(Lane).WithEngine(engine))
	y.Add("/v1/declarations", new(Declaration).WithEngine(engine))
	y.Add("/v1/alerts", new(Alert).WithEngine(engine))
	y.Add("/v1/stats", new(Stats).WithEngine(engine))

	server := httptest.NewServer(y)
	t.Cleanup(server.Close)
	return server, engine
}

func TestDeclarationPost(t *testing.T) {
	server, engine := testServer(t)

	body, _ := json.Marshal(types.DeclarationInput{
		MRN:                "KA111222",
		TraderName:         "Manual Trader",
		HSCode:             "8517",
		GoodsDesc:          "Mobile phones",
		OriginCountry:      "NB",
		DestinationCountry: "Republic of KA",
		Value:              50000,
		Weight:             800,
	})
	response, err := http.Post(server.URL+"/v1/declarations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusCreated, response.StatusCode)

	var created types.Declaration
	require.NoError(t, json.NewDecoder(response.Body).Decode(&created))
	assert.Equal(t, "KA111222", created.MRN)
	assert.Equal(t, types.AEONone, created.AEO)

	decls := engine.Declarations(nil)
	require.NotEmpty(t, decls)
	assert.Equal(t, "KA111222", decls[0].MRN)
}

func TestDeclarationPostInvalid(t *testing.T) {
	server, engine := testServer(t)

	body, _ := json.Marshal(types.DeclarationInput{MRN: "BAD"})
	response, err := http.Post(server.URL+"/v1/declarations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	var failure validationFailure
	require.NoError(t, json.NewDecoder(response.Body).Decode(&failure))
	assert.Equal(t, "Format: KA + 6 digits", failure.Fields["mrn"])
	assert.Empty(t, engine.Declarations(nil))
}

func TestCrossingList(t *testing.T) {
	server, _ := testServer(t)

	response, err := http.Get(server.URL + "/v1/crossings")
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var cps []types.CrossingPoint
	require.NoError(t, json.NewDecoder(response.Body).Decode(&cps))
	assert.Len(t, cps, 6)
}

func TestCrossingSnapshotNotFound(t *testing.T) {
	server, _ := testServer(t)

	response, err := http.Get(server.URL + "/v1/crossings/BCP_NOWHERE")
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestLanePutTogglesOpen(t *testing.T) {
	server, engine := testServer(t)
	laneID := engine.Lanes()[0].ID

	body := bytes.NewReader([]byte(`{"isOpen": false}`))
	request, _ := http.NewRequest(http.MethodPut, server.URL+"/v1/lanes/"+laneID, body)
	request.Header.Set("Content-Type", "application/json")
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	for _, lane := range engine.Lanes() {
		if lane.ID == laneID {
			assert.False(t, lane.IsOpen)
		}
	}
}

func TestStatsGet(t *testing.T) {
	server, _ := testServer(t)

	response, err := http.Get(server.URL + "/v1/stats")
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var stats apiStats
	require.NoError(t, json.NewDecoder(response.Body).Decode(&stats))
	assert.Equal(t, "BCP_VERMILLION", stats.Selected)
	assert.Len(t, stats.Network, 6)
}
