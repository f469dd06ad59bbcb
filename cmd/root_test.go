package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikiq/core/output"
)

type fakePage struct {
	redirect string // target title when this page is a redirect
	extract  string
	html     string
	links    []map[string]any
}

// fakeWiki serves a tiny Wikipedia keyed by exact title.
var fakeWiki = map[string]fakePage{
	"Mercury": {
		extract: "Mercury may refer to several things.",
		html:    "<p><b>Mercury</b> may refer to several things.</p>",
	},
	"Mercury (disambiguation)": {
		links: []map[string]any{
			{"ns": 0, "title": "Mercury (element)"},
			{"ns": 1, "title": "Talk:Mercury (disambiguation)"},
			{"ns": 0, "title": "Mercury (planet)"},
			{"ns": 14, "title": "Category:Disambiguation pages"},
			{"ns": 0, "title": "Mercury (mythology)"},
		},
	},
	"Mercury (planet)": {
		extract: "Mercury is the first planet from the Sun.",
		html:    `<p><b>Mercury</b> is the first planet from the Sun<sup class="reference">[1]</sup>.</p>`,
	},
	"The Matrix": {
		extract: "The Matrix is a 1999 science fiction action film.",
		html:    "<p><i>The Matrix</i> is a 1999 science fiction action film.</p>",
	},
	"Nyc": {redirect: "New York City"},
	"New York City": {
		extract: "New York City is the most populous city in the United States.",
		html:    `<p><b>New York City</b> is the most populous city in the <a href="/wiki/United_States">United States</a>.</p>`,
	},
}

func fakeURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}

func newFakeWikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		title := q.Get("titles")
		w.Header().Set("Content-Type", "application/json")

		fp, ok := fakeWiki[title]
		var redirects []map[string]any
		if ok && fp.redirect != "" && q.Has("redirects") {
			redirects = append(redirects, map[string]any{"from": title, "to": fp.redirect})
			title = fp.redirect
			fp, ok = fakeWiki[title]
		}
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{
				"query": map[string]any{"pages": map[string]any{
					"-1": map[string]any{"ns": 0, "title": title, "missing": ""},
				}},
			})
			return
		}

		page := map[string]any{"pageid": 100, "ns": 0, "title": title}
		for _, prop := range strings.Split(q.Get("prop"), "|") {
			switch prop {
			case "extracts":
				if q.Has("explaintext") {
					page["extract"] = fp.extract
				} else {
					page["extract"] = fp.html
				}
			case "info":
				page["fullurl"] = fakeURL(title)
			case "links":
				page["links"] = fp.links
			}
		}
		query := map[string]any{"pages": map[string]any{"100": page}}
		if redirects != nil {
			query["redirects"] = redirects
		}
		json.NewEncoder(w).Encode(map[string]any{"query": query})
	}))
	t.Cleanup(server.Close)
	return server
}

// setupCmdTest isolates a run from any real config and points the API
// client at a fake server.
func setupCmdTest(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Setenv("WIKIQ_API_ENDPOINT", newFakeWikiServer(t).URL)
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Summary(t *testing.T) {
	setupCmdTest(t)

	code, stdout, stderr := runCmd(t, "the", "matrix")

	assert.Equal(t, output.ExitSuccess, code, stderr)
	assert.Equal(t, "The Matrix\nThe Matrix is a 1999 science fiction action film.\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_SummaryKeepsQualifier(t *testing.T) {
	setupCmdTest(t)

	code, stdout, _ := runCmd(t, "mercury (planet)", "--url")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Equal(t, "Mercury (planet)\n"+
		"Mercury is the first planet from the Sun.\n"+
		"https://en.wikipedia.org/wiki/Mercury_(planet)\n", stdout)
}

func TestRun_SummaryFollowsRedirect(t *testing.T) {
	setupCmdTest(t)
	dir := t.TempDir()

	code, stdout, stderr := runCmd(t, "nyc", "-u", "--export", "md", "--output_dir", dir)

	require.Equal(t, output.ExitSuccess, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "New York City\n"+
		"New York City is the most populous city in the United States.\n"+
		"https://en.wikipedia.org/wiki/New_York_City\n"), stdout)

	data, err := os.ReadFile(filepath.Join(dir, "New_York_City.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# New York City\n")
	assert.Contains(t, string(data), "[United States]("+os.Getenv("WIKIQ_API_ENDPOINT")+"/wiki/United_States)")
}

func TestRun_PageNotFound(t *testing.T) {
	setupCmdTest(t)

	code, stdout, stderr := runCmd(t, "qwzxv")

	assert.Equal(t, output.ExitUsageError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No page found for: 'Qwzxv'")
}

func TestRun_ListDisambiguations(t *testing.T) {
	setupCmdTest(t)

	code, stdout, stderr := runCmd(t, "mercury", "-l")

	require.Equal(t, output.ExitSuccess, code, stderr)
	element := strings.Index(stdout, "Mercury (element)")
	planet := strings.Index(stdout, "Mercury (planet)")
	mythology := strings.Index(stdout, "Mercury (mythology)")
	assert.True(t, element >= 0 && element < planet && planet < mythology, stdout)
	assert.NotContains(t, stdout, "Talk:")
	assert.NotContains(t, stdout, "Category:")
}

func TestRun_ListDisambiguationsNotFound(t *testing.T) {
	setupCmdTest(t)

	code, _, stderr := runCmd(t, "the matrix", "--list-disambiguations")

	assert.Equal(t, output.ExitUsageError, code)
	assert.Contains(t, stderr, "No disambiguation page found for: 'The Matrix'")
}

func TestRun_SelectDisambiguationWithURL(t *testing.T) {
	setupCmdTest(t)

	code, stdout, stderr := runCmd(t, "mercury", "-d", "2", "-u")

	require.Equal(t, output.ExitSuccess, code, stderr)
	assert.Equal(t, "Mercury (planet)\n"+
		"Mercury is the first planet from the Sun.\n"+
		"https://en.wikipedia.org/wiki/Mercury_(planet)\n", stdout)
}

func TestRun_SelectDisambiguationOutOfRange(t *testing.T) {
	setupCmdTest(t)

	for _, idx := range []string{"0", "4", "-1"} {
		code, stdout, stderr := runCmd(t, "mercury", "--disambiguation="+idx)

		assert.Equal(t, output.ExitUsageError, code, idx)
		assert.Empty(t, stdout, idx)
		assert.Contains(t, stderr, "Disambiguation index "+idx+" is out of range", idx)
		assert.Contains(t, stderr, "'Mercury' has 3 disambiguation entries", idx)
	}
}

func TestRun_URLFailureKeepsListing(t *testing.T) {
	setupCmdTest(t)
	delete(fakeWikiCopy(t), "Mercury")

	code, stdout, stderr := runCmd(t, "mercury", "-l", "-u")

	assert.Equal(t, output.ExitUsageError, code)
	assert.Contains(t, stdout, "Mercury (planet)")
	assert.Contains(t, stderr, "No page found for: 'Mercury'")
}

// fakeWikiCopy swaps fakeWiki for a copy for the duration of the test.
func fakeWikiCopy(t *testing.T) map[string]fakePage {
	t.Helper()
	orig := fakeWiki
	cp := make(map[string]fakePage, len(orig))
	for k, v := range orig {
		cp[k] = v
	}
	fakeWiki = cp
	t.Cleanup(func() { fakeWiki = orig })
	return cp
}

func TestRun_UsageErrors(t *testing.T) {
	setupCmdTest(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no title", nil, "requires at least 1 arg"},
		{"mutually exclusive", []string{"mercury", "-l", "-d", "1"}, "mutually exclusive"},
		{"unknown flag", []string{"mercury", "--bogus"}, "unknown flag"},
		{"bad index", []string{"mercury", "-d", "two"}, "invalid argument"},
		{"bad export format", []string{"mercury", "--export", "docx"}, `unknown export format "docx"`},
		{"bad color", []string{"mercury", "--color", "sometimes"}, "invalid color mode"},
		{"output dir without export", []string{"mercury", "--output_dir", "x"}, "--output_dir requires --export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, tt.args...)

			assert.Equal(t, output.ExitUsageError, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
			assert.Contains(t, stderr, "wikiq --help")
		})
	}
}

func TestRun_ConfigError(t *testing.T) {
	setupCmdTest(t)
	t.Setenv("WIKIQ_LOGGING_LEVEL", "loud")

	code, _, stderr := runCmd(t, "mercury")

	assert.Equal(t, output.ExitConfigError, code)
	assert.Contains(t, stderr, "could not load configuration")
	assert.Contains(t, stderr, "invalid logging level")
}

func TestRun_Help(t *testing.T) {
	setupCmdTest(t)

	code, stdout, _ := runCmd(t, "--help")

	assert.Equal(t, output.ExitSuccess, code)
	for _, flag := range []string{"--list-disambiguations", "--disambiguation", "--url", "--export"} {
		assert.Contains(t, stdout, flag)
	}
	assert.Contains(t, stdout, "md, json, pdf")
	assert.Contains(t, stdout, "api.timeout")
}

func TestRun_VerboseLogsEndpoint(t *testing.T) {
	setupCmdTest(t)

	code, _, stderr := runCmd(t, "the matrix", "-v")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Contains(t, stderr, `msg="configuration loaded"`)
	assert.Contains(t, stderr, "endpoint="+os.Getenv("WIKIQ_API_ENDPOINT"))
}

func TestRun_Version(t *testing.T) {
	setupCmdTest(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	code, stdout, _ := runCmd(t, "--version")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Contains(t, stdout, "1.2.3")
}

func TestRun_VerboseLogsRequests(t *testing.T) {
	setupCmdTest(t)

	code, stdout, stderr := runCmd(t, "the matrix", "-v")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Contains(t, stdout, "The Matrix is a 1999")
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, `msg="api request"`)
}

func TestRun_Export(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		setupCmdTest(t)
		dir := t.TempDir()

		code, stdout, stderr := runCmd(t, "mercury", "-d", "2", "--export", "md", "--output_dir", dir)

		require.Equal(t, output.ExitSuccess, code, stderr)
		path := filepath.Join(dir, "Mercury_planet.md")
		assert.Contains(t, stdout, "Written: "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Mercury (planet)\n\n"+
			"**Mercury** is the first planet from the Sun.\n\n"+
			"Source: https://en.wikipedia.org/wiki/Mercury_(planet)\n", string(data))
	})

	t.Run("json disambiguation list", func(t *testing.T) {
		setupCmdTest(t)
		dir := t.TempDir()

		code, _, stderr := runCmd(t, "mercury", "-l", "--export", "json", "--output_dir", dir)

		require.Equal(t, output.ExitSuccess, code, stderr)
		data, err := os.ReadFile(filepath.Join(dir, "Mercury_disambiguation.json"))
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "Mercury (disambiguation)", doc["title"])
		assert.Equal(t, []any{"Mercury (element)", "Mercury (planet)", "Mercury (mythology)"}, doc["disambiguations"])
		assert.Equal(t, "en", doc["language"])
	})

	t.Run("pdf", func(t *testing.T) {
		setupCmdTest(t)
		dir := t.TempDir()

		code, _, stderr := runCmd(t, "the matrix", "--export", "pdf", "--output_dir", dir)

		require.Equal(t, output.ExitSuccess, code, stderr)
		data, err := os.ReadFile(filepath.Join(dir, "The_Matrix.pdf"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})
}
