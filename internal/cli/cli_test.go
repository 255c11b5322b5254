package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/kzmaps/internal/globalmap"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"gopkg.in/yaml.v3"
)

// newUpstream serves both map APIs and a workshop page from one test server
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/global/record_filters", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"map_id":992,"stage":0,"mode_id":200,"tickrate":128,"created_on":"2018-05-19T20:33:46"},
			{"id":2,"map_id":7,"stage":0,"mode_id":201,"tickrate":128,"created_on":"2018-05-19T20:33:46"}
		]`)
	})
	mux.HandleFunc("/global/maps", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"id":992,"name":"kz_lionharder","difficulty":5,"validated":true,"created_on":"2018-05-19T20:33:46","updated_on":"2018-05-19T20:33:46",
			 "workshop_url":"%s/sharedfiles/filedetails/?id=1386137592"},
			{"id":7,"name":"kz_apricity","difficulty":4,"validated":true,"created_on":"2019-01-01T00:00:00","updated_on":"2019-01-01T00:00:00","workshop_url":""}
		]`, server.URL)
	})
	mux.HandleFunc("/schnose/maps", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":[
			{"id":992,"name":"kz_lionharder","global":true,"filesize":34067068,"courses":[{"id":1,"stage":0,"tier":5}],
			 "mappers":[{"name":"GameChaos","steam_id":"STEAM_1:1:91469801"}],"approved_by":null,
			 "created_on":"2018-05-19T20:33:46","updated_on":"2018-05-19T20:33:46"},
			{"id":7,"name":"kz_apricity","global":true,"filesize":1000,"courses":[{"id":2,"stage":0,"tier":4}],
			 "mappers":[],"approved_by":null,
			 "created_on":"2019-01-01T00:00:00","updated_on":"2019-01-01T00:00:00"}
		],"took":1}`)
	})
	mux.HandleFunc("/sharedfiles/filedetails/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="workshopItemTitle">kz_lionharder</div>
			<div class="detailsStatsContainerRight"><div class="detailsStatRight">34.067 MB</div></div>
		</body></html>`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("KZMAPS_GLOBAL_API_URL", server.URL+"/global/")
	t.Setenv("KZMAPS_SCHNOSE_API_URL", server.URL+"/schnose/")
	t.Setenv("KZMAPS_LOG_LEVEL", "error")

	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := runWithStderr(t, args...)
	return stdout, err
}

func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMapsCommand(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "maps")
	if err != nil {
		t.Fatalf("maps error = %v", err)
	}

	want := "kz_apricity (T4 Hard) [SKZ]\nkz_lionharder (T5 Very Hard) [KZT]\n\nTotal: 2 maps\n"
	if out != want {
		t.Errorf("maps output = %q, want %q", out, want)
	}
}

func TestMapsCommand_VerboseLogsMetrics(t *testing.T) {
	newUpstream(t)

	_, stderr, err := runWithStderr(t, "maps", "--verbose")
	if err != nil {
		t.Fatalf("maps error = %v", err)
	}

	var metrics map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry struct {
			Message string                 `json:"message"`
			Fields  map[string]interface{} `json:"fields"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v\n%s", err, line)
		}
		if entry.Message == "Fetch metrics" {
			metrics, _ = entry.Fields["metrics"].(map[string]interface{})
		}
	}
	if metrics == nil {
		t.Fatalf("no fetch metrics logged:\n%s", stderr)
	}

	timings, _ := metrics["timings"].(map[string]interface{})
	for _, call := range []string{"fetch.record_filters", "fetch.schnose_maps", "fetch.global_maps"} {
		if _, ok := timings[call]; !ok {
			t.Errorf("timings missing %s: %v", call, timings)
		}
	}
	gauges, _ := metrics["gauges"].(map[string]interface{})
	if gauges["maps.count"] != float64(2) {
		t.Errorf("maps.count gauge = %v, want 2", gauges["maps.count"])
	}
}

func TestMapsCommand_QuietByDefault(t *testing.T) {
	newUpstream(t)

	_, stderr, err := runWithStderr(t, "maps")
	if err != nil {
		t.Fatalf("maps error = %v", err)
	}
	if strings.Contains(stderr, "Fetch metrics") {
		t.Errorf("metrics logged without --verbose:\n%s", stderr)
	}
}

func TestMapsCommand_JSON(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "maps", "--format", "json", "--sort", "tier")
	if err != nil {
		t.Fatalf("maps error = %v", err)
	}

	var result MapsResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if result.Count != 2 || result.Maps[0].Name != "kz_apricity" {
		t.Errorf("result = %+v", result)
	}
	if result.Maps[1].WorkshopLink == nil {
		t.Error("kz_lionharder workshop link missing from JSON")
	}
	if !strings.Contains(out, `"created_on": "2018-05-19T20:33:46"`) {
		t.Errorf("JSON output does not use timestamp pattern:\n%s", out)
	}
}

func TestMapsCommand_YAML(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "maps", "--format", "yaml", "--mode", "kzt")
	if err != nil {
		t.Fatalf("maps error = %v", err)
	}

	var result MapsResult
	if err := yaml.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid YAML output: %v\n%s", err, out)
	}
	if result.Count != 1 || result.Maps[0].Name != "kz_lionharder" {
		t.Errorf("result = %+v", result)
	}
	if result.Maps[0].CreatedOn.String() != "2018-05-19T20:33:46" {
		t.Errorf("CreatedOn = %s", result.Maps[0].CreatedOn)
	}
}

func TestMapsCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"maps", "--format", "xml"}, "invalid format"},
		{"sort", []string{"maps", "--sort", "size"}, "invalid sort order"},
		{"mode", []string{"maps", "--mode", "hns"}, "invalid mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newUpstream(t)

			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMapsCommand_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	t.Setenv("KZMAPS_GLOBAL_API_URL", server.URL)
	t.Setenv("KZMAPS_SCHNOSE_API_URL", server.URL)
	t.Setenv("KZMAPS_LOG_LEVEL", "error")

	_, err := run(t, "maps")
	if err == nil {
		t.Fatal("maps expected error, got nil")
	}
	if !strings.Contains(err.Error(), "GlobalAPI request failed") {
		t.Errorf("error = %v, want GlobalAPI request failed", err)
	}
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"by name", []string{"search", "lion"}, "kz_lionharder (T5 Very Hard) [KZT]\n\nTotal: 1 map\n", nil},
		{"by id", []string{"search", "7"}, "kz_apricity (T4 Hard) [SKZ]\n\nTotal: 1 map\n", nil},
		{"no match", []string{"search", "xyzzy"}, "", errNotFound},
		{"unknown id", []string{"search", "1234"}, "", errNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newUpstream(t)

			out, err := run(t, tt.args...)
			if err != tt.wantErr {
				t.Fatalf("search error = %v, want %v", err, tt.wantErr)
			}
			if out != tt.want {
				t.Errorf("search output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTimeCommand(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"0", "00:00.000\n", false},
		{"11153.727069", "03:05:53.727\n", false},
		{"abc", "", true},
		{"-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			out, err := run(t, "time", "--", tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("time error = %v, wantErr %v", err, tt.wantErr)
			}
			if out != tt.want {
				t.Errorf("time output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestWorkshopCommand(t *testing.T) {
	newUpstream(t)

	out, err := run(t, "workshop", "lionharder")
	if err != nil {
		t.Fatalf("workshop error = %v", err)
	}
	if !strings.HasPrefix(out, "kz_lionharder\n") || !strings.Contains(out, "Size: 34.067 MB") {
		t.Errorf("workshop output = %q", out)
	}

	if _, err := run(t, "workshop", "apricity"); err != errNotFound {
		t.Errorf("workshop without link error = %v, want errNotFound", err)
	}
}

func TestBestFirst(t *testing.T) {
	ascending := []globalmap.Match{
		{Map: globalmap.GlobalMap{Name: "kz_d"}, Score: 60},
		{Map: globalmap.GlobalMap{Name: "kz_a"}, Score: 80},
		{Map: globalmap.GlobalMap{Name: "kz_b"}, Score: 80},
		{Map: globalmap.GlobalMap{Name: "kz_c"}, Score: 100},
	}

	tests := []struct {
		limit int
		want  string
	}{
		{0, "kz_c,kz_a,kz_b,kz_d"},
		{2, "kz_c,kz_a"},
		{5, "kz_c,kz_a,kz_b,kz_d"},
	}

	for _, tt := range tests {
		got := bestFirst(ascending, tt.limit)
		names := make([]string, 0, len(got))
		for _, m := range got {
			names = append(names, m.Name)
		}
		if strings.Join(names, ",") != tt.want {
			t.Errorf("bestFirst(limit=%d) = %v, want %s", tt.limit, names, tt.want)
		}
	}

	if ascending[0].Map.Name != "kz_d" {
		t.Error("bestFirst() reordered its input")
	}
}

func TestBestMatch_TiesPickFirstByName(t *testing.T) {
	maps := []globalmap.GlobalMap{
		{ID: 1, Name: "kz_lion_a"},
		{ID: 2, Name: "kz_lion_b"},
		{ID: 3, Name: "kz_stallion"},
	}

	got, ok := bestMatch(maps, kz.MapName("lion"))
	if !ok || got.Name != "kz_lion_a" {
		t.Errorf("bestMatch(lion) = %q, %v, want kz_lion_a", got.Name, ok)
	}

	got, ok = bestMatch(maps, kz.MapID(3))
	if !ok || got.Name != "kz_stallion" {
		t.Errorf("bestMatch(3) = %q, %v, want kz_stallion", got.Name, ok)
	}
}
