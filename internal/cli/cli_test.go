package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/momentum/internal/cli"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	slumpCSV = "events,description\nstrikeout,swinging_strike\nstrikeout,called_strike\nfield_out,hit_into_play\nstrikeout,swinging_strike\n"
	surgeCSV = "events,description\nhome_run,hit_into_play\nhome_run,hit_into_play\nsingle,hit_into_play\nwalk,ball\n"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(args ...string) (map[string]any, string, error) {
	var out, errOut bytes.Buffer
	err := cli.Execute(context.Background(), args, &out, &errOut)
	if err != nil {
		return nil, errOut.String(), err
	}
	var doc map[string]any
	if jerr := json.Unmarshal(out.Bytes(), &doc); jerr != nil {
		return nil, out.String(), jerr
	}
	return doc, errOut.String(), nil
}

func TestAggregateCommand(t *testing.T) {
	Convey("Given a local Statcast export", t, func() {
		path := writeFile(t, "surge.csv", surgeCSV)

		Convey("When it is aggregated for a batter", func() {
			doc, _, err := run("aggregate", "--role", "batter", "--csv", path)
			So(err, ShouldBeNil)

			Convey("Then the views and the flattened summary are printed", func() {
				So(doc["records"], ShouldEqual, float64(4))
				views := doc["views"].(map[string]any)
				So(views, ShouldContainKey, "summary")
				So(views, ShouldContainKey, "situational_stats")
				flat := doc["flat"].(map[string]any)
				So(flat["home_runs"], ShouldEqual, float64(2))
			})
		})

		Convey("When the role is unknown", func() {
			_, _, err := run("aggregate", "--role", "catcher", "--csv", path)
			So(err, ShouldNotBeNil)
		})

		Convey("When the file is missing", func() {
			_, _, err := run("aggregate", "--role", "batter", "--csv", filepath.Join(t.TempDir(), "none.csv"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCompareCommand(t *testing.T) {
	Convey("Given a slump followed by a surge", t, func() {
		before := writeFile(t, "before.csv", slumpCSV)
		after := writeFile(t, "after.csv", surgeCSV)

		Convey("When the windows are compared", func() {
			doc, _, err := run("compare", "--role", "batter", "--name", "Aaron Judge", "--before", before, "--after", after)
			So(err, ShouldBeNil)

			Convey("Then the score is above neutral", func() {
				So(doc["available"], ShouldEqual, true)
				So(doc["role"], ShouldEqual, "batter")
				So(doc["mss"], ShouldBeGreaterThan, float64(50))
			})
		})

		Convey("When a required flag is missing", func() {
			_, _, err := run("compare", "--role", "batter", "--before", before)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "after")
		})
	})
}

func TestScoreCommand(t *testing.T) {
	Convey("Given a fake Savant endpoint and a player-id table", t, func() {
		savant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(surgeCSV))
		}))
		defer savant.Close()

		ids := writeFile(t, "ids.csv", "PLAYERNAME,MLBID\nAaron Judge,592450\nGerrit Cole,543037\n")
		cfgPath := writeFile(t, "mss.yaml",
			"statcast_base_url: \""+savant.URL+"\"\nstatcast_rps: 1000\nstatcast_burst: 10\nplayer_id_file: \""+ids+"\"\n")

		Convey("When a moment is scored", func() {
			doc, _, err := run("score", "--config", cfgPath,
				"--date", "2024-06-15", "--batter", "Aaron Judge", "--pitcher", "Gerrit Cole",
				"--event", "home_run", "--wpa", "0.42", "--days-after", "14")
			So(err, ShouldBeNil)

			Convey("Then the bundle is printed", func() {
				So(doc["moment_date"], ShouldEqual, "2024-06-15")
				So(doc["moment_type"], ShouldEqual, "home_run")
				So(doc["wpa_change"], ShouldEqual, 0.42)
				batter := doc["batter"].(map[string]any)
				So(batter["name"], ShouldEqual, "Aaron Judge")
				So(batter["player_id"], ShouldEqual, float64(592450))
			})
		})

		Convey("When the moment date is malformed", func() {
			_, _, err := run("score", "--config", cfgPath,
				"--date", "June 15", "--batter", "Aaron Judge", "--pitcher", "Gerrit Cole", "--event", "home_run")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestReplayCommand(t *testing.T) {
	Convey("Given a replay without a moments file", t, func() {
		_, _, err := run("replay", "--file", filepath.Join(t.TempDir(), "missing.csv"))
		So(err, ShouldNotBeNil)
	})
}
