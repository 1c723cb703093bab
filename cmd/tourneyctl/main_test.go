/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikeb26/enginetourney/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TOURNEY_S3_BUCKET", "")

	root := newRootCmd(newApp(context.Background()))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")},
		args...))
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestTypesCmd(t *testing.T) {
	out, err := runCmd(t, "types")
	require.NoError(t, err)
	assert.Equal(t, "gauntlet\nknockout\npyramid\nround-robin\n", out)
}

func TestNewShowRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gauntlet.json")

	out, err := runCmd(t, "new", "--type", "gauntlet", "--name", "Test gauntlet",
		"--players", "alpha,bravo,charlie", "--tc", "40/60+0.5", "--seeds", "1",
		"--book", "8moves.pgn", "--date", "2026-03-05", path)
	require.NoError(t, err)
	assert.Contains(t, out, `created gauntlet tournament "Test gauntlet" (3 players)`)

	loaded, err := tournament.LoadFromFile(path, nil)
	require.NoError(t, err)
	g := loaded.(*tournament.Gauntlet)
	assert.Equal(t, 1, g.Seeds())
	assert.Equal(t, "2026-03-05", g.EventDate().Format("2006-01-02"))
	require.Len(t, g.Players(), 3)
	assert.Equal(t, "40/60+0.5", g.Players()[0].TimeControl().String())
	assert.Same(t, g.Players()[0].Book(), g.Players()[2].Book())
	assert.Equal(t, tournament.BookFormatPGN, g.Players()[0].Book().(*tournament.FileBook).Format())

	out, err = runCmd(t, "record", "--white", "alpha", "--black", "bravo",
		"--result", "1-0", "--termination", "checkmate", "--desc", "White mates", path)
	require.NoError(t, err)
	assert.Equal(t, "alpha - bravo 1-0 {White mates}\n", out)

	_, err = runCmd(t, "record", "--white", "charlie", "--black", "alpha",
		"--result", "1/2-1/2", "--termination", "threefold repetition", path)
	require.NoError(t, err)

	out, err = runCmd(t, "show", "--outcomes", path)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)
	assert.Equal(t, "Test gauntlet (gauntlet)", lines[0])
	assert.Contains(t, lines[3], "alpha")
	assert.Contains(t, lines[3], "1.5")
	assert.Contains(t, out, "checkmate")
	assert.Contains(t, out, `"White mates": 1`)
	assert.Contains(t, out, `"threefold repetition": 1`)

	out, err = runCmd(t, "show", "--html", path)
	require.NoError(t, err)
	assert.Contains(t, out, `<table class="standings">`)

	t.Run("invalid record", func(t *testing.T) {
		_, err := runCmd(t, "record", "--white", "alpha", "--black", "zulu",
			"--result", "1-0", "--termination", "checkmate", path)
		assert.ErrorContains(t, err, `no player named "zulu"`)

		_, err = runCmd(t, "record", "--white", "alpha", "--black", "alpha",
			"--result", "1-0", "--termination", "checkmate", path)
		assert.Error(t, err)

		_, err = runCmd(t, "record", "--white", "alpha", "--black", "bravo",
			"--result", "2-0", "--termination", "checkmate", path)
		assert.Error(t, err)

		_, err = runCmd(t, "record", "--white", "alpha", "--black", "bravo",
			"--result", "1-0", "--termination", "gave up", path)
		assert.Error(t, err)

		_, err = runCmd(t, "record", "--white", "alpha", path)
		assert.Error(t, err)

		loaded, err := tournament.LoadFromFile(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.FinishedGames())
	})
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rr.json")

	_, err := runCmd(t, "new", "--type", "swiss", path)
	assert.ErrorIs(t, err, tournament.ErrUnknownType)

	_, err = runCmd(t, "new", "--type", "round-robin", "--seeds", "2", path)
	assert.ErrorContains(t, err, "not seeded")

	_, err = runCmd(t, "new", "--tc", "fast", path)
	assert.Error(t, err)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runCmd(t, "new", "--name", "first", path)
	require.NoError(t, err)
	_, err = runCmd(t, "new", "--name", "second", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = runCmd(t, "new", "--name", "second", "--force", path)
	require.NoError(t, err)
}

func TestSummaryCmd(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	_, err := runCmd(t, "new", "--name", "First", "--players", "a,b", first)
	require.NoError(t, err)
	_, err = runCmd(t, "new", "--type", "pyramid", "--name", "Second", second)
	require.NoError(t, err)

	out, err := runCmd(t, "summary", first, second)
	require.NoError(t, err)
	assert.Equal(t, first+": First (round-robin): 2 players, 0 games, leader a\n"+
		second+": Second (pyramid): 0 players, 0 games, leader -\n", out)

	missing := filepath.Join(dir, "missing.json")
	out, err = runCmd(t, "summary", missing, first, missing, second)
	assert.Error(t, err)
	assert.Contains(t, out, first+": First")
	assert.Contains(t, out, second+": Second")
	assert.Contains(t, out, missing+": error:")

	t.Run("cancelled", func(t *testing.T) {
		t.Setenv("TOURNEY_S3_BUCKET", "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		root := newRootCmd(newApp(ctx))
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"--env", filepath.Join(t.TempDir(), "none.env"),
			"summary", first})
		err := root.ExecuteContext(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, out.String(), first+": skipped:")
	})
}

func TestArchiveCmds(t *testing.T) {
	dir := t.TempDir()
	archiveDir := filepath.Join(dir, "archive")
	path := filepath.Join(dir, "event.json")
	metricsFile := filepath.Join(dir, "metrics.prom")

	_, err := runCmd(t, "new", "--type", "knockout", "--name", "Cup",
		"--players", "a,b,c,d", path)
	require.NoError(t, err)

	out, err := runCmd(t, "--metrics-textfile", metricsFile, "push", "--dir",
		archiveDir, path, "cup-2026")
	require.NoError(t, err)
	assert.Equal(t, "pushed "+path+" as cup-2026\n", out)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `enginetourney_archive_operations_total{op="put",result="ok",store="file"} 1`)

	out, err = runCmd(t, "list", "--dir", archiveDir)
	require.NoError(t, err)
	assert.Equal(t, "cup-2026\n", out)

	pulled := filepath.Join(dir, "pulled.json")
	out, err = runCmd(t, "pull", "--dir", archiveDir, "cup-2026", pulled)
	require.NoError(t, err)
	assert.Contains(t, out, "saved cup-2026 (knockout)")

	orig, err := tournament.LoadFromFile(path, nil)
	require.NoError(t, err)
	copied, err := tournament.LoadFromFile(pulled, nil)
	require.NoError(t, err)
	assert.Equal(t, orig.ID(), copied.ID())

	_, err = runCmd(t, "pull", "--dir", archiveDir, "nope", pulled)
	assert.Error(t, err)

	_, err = runCmd(t, "push", path, "cup-2026")
	assert.ErrorContains(t, err, "TOURNEY_S3_BUCKET")
}

func TestFetchCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event.json")
	_, err := runCmd(t, "new", "--type", "pyramid", "--name", "Published",
		"--players", "x,y", path)
	require.NoError(t, err)
	doc, err := os.ReadFile(path)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pub/published.json" {
			http.NotFound(w, r)
			return
		}
		w.Write(doc)
	}))
	defer srv.Close()

	fetched := filepath.Join(dir, "fetched.json")
	out, err := runCmd(t, "fetch", "--url", srv.URL+"/pub", "published", fetched)
	require.NoError(t, err)
	assert.Contains(t, out, "saved published (pyramid)")

	loaded, err := tournament.LoadFromFile(fetched, nil)
	require.NoError(t, err)
	assert.Equal(t, "Published", loaded.Name())

	_, err = runCmd(t, "fetch", "--url", srv.URL+"/pub", "other", fetched)
	assert.Error(t, err)

	t.Setenv("TOURNEY_HTTP_BASE_URL", "")
	_, err = runCmd(t, "fetch", "published", fetched)
	assert.ErrorContains(t, err, "TOURNEY_HTTP_BASE_URL")
}
