package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"

	"rerview/internal/stats"
	"rerview/internal/world"
)

type statsData struct {
	Totals []int32            `nbt:"total_counts_at_level"`
	Blocks map[string][]int32 `nbt:"level_counts_for_block"`
}

// writeStats stores a gzip NBT statistics file under save/dir/data.
func writeStats(t *testing.T, save, dir string, d statsData) {
	t.Helper()
	p := filepath.Join(save, dir, "data", "rer_worldgen.dat")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	root := struct {
		Data statsData `nbt:"data"`
	}{d}
	if err := nbt.NewEncoder(zw).Encode(root, ""); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func newSave(t *testing.T) string {
	t.Helper()
	save := t.TempDir()
	writeStats(t, save, ".", statsData{
		Totals: []int32{100, 100, 100},
		Blocks: map[string][]int32{
			"minecraft:stone":       {90, 50, 10},
			"minecraft:diamond_ore": {1, 2, 0},
		},
	})
	writeStats(t, save, filepath.Join("dimensions", "mymod", "caves"), statsData{
		Totals: []int32{10, 0, 10},
		Blocks: map[string][]int32{"mymod:glowstone": {5, 0, 1}},
	})
	return save
}

// writeConfig stores a YAML config and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rerview.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// threeLevels matches the fixtures written by newSave.
const threeLevels = "min_level: -64\nmax_level: -62\n"

func TestRunEndToEnd(t *testing.T) {
	save := newSave(t)
	in := strings.NewReader("!ls w\ndiamond_ore\n!sel mymod:caves\nmymod:glowstone\n!q\n\n")
	var out, errOut bytes.Buffer

	cfg := writeConfig(t, threeLevels)
	if err := run([]string{"-config", cfg, "-dir", save, "-text"}, in, &out, &errOut); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, errOut.String())
	}
	got := out.String()
	for _, want := range []string{
		"Initializing...",
		"Done!",
		"minecraft:overworld",
		"mymod:caves",
		"Total: 2",
		"Block spawn chance of minecraft$diamond_ore in minecraft$overworld",
		"Peak: 0.020000 at level -63",
		"Selected world mymod:caves.",
		"Peak: 0.500000 at level -64",
		"Levels without samples: 1",
		"Press Enter to quit... ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	logs := errOut.String()
	if !strings.Contains(logs, "world selected") {
		t.Errorf("info records missing from the log:\n%s", logs)
	}
	if strings.Contains(logs, "statistics loaded") {
		t.Errorf("debug records logged without -v:\n%s", logs)
	}
}

func TestRunVerboseLogsDebug(t *testing.T) {
	save := newSave(t)
	var out, errOut bytes.Buffer
	cfg := writeConfig(t, threeLevels)
	if err := run([]string{"-v", "-config", cfg, "-dir", save, "-text"}, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "statistics loaded") {
		t.Errorf("debug records missing with -v:\n%s", errOut.String())
	}
}

func TestRunLevelCountMismatch(t *testing.T) {
	save := newSave(t)
	var out, errOut bytes.Buffer
	err := run([]string{"-dir", save, "-text"}, strings.NewReader(""), &out, &errOut)
	if !errors.Is(err, stats.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed for 3 levels under the default range", err)
	}
	if strings.Contains(out.String(), "Done!") {
		t.Error("REPL started with a world that does not fit the level range")
	}
}

func TestRunSelectRejectsWrongLevelCount(t *testing.T) {
	save := newSave(t)
	writeStats(t, save, filepath.Join("dimensions", "mymod", "tall"), statsData{
		Totals: []int32{1, 1, 1, 1, 1},
		Blocks: map[string][]int32{"mymod:glowstone": {0, 0, 0, 0, 1}},
	})
	var out, errOut bytes.Buffer
	in := strings.NewReader("!sel mymod:tall\n!info\n")
	cfg := writeConfig(t, threeLevels)
	if err := run([]string{"-config", cfg, "-dir", save, "-text"}, in, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Cannot load world mymod:tall", "minecraft:overworld", "-64..-62 (3)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunEmptySave(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-dir", t.TempDir(), "-text"}, strings.NewReader(""), &out, &errOut)
	if !errors.Is(err, world.ErrNoWorlds) {
		t.Fatalf("err = %v, want ErrNoWorlds", err)
	}
	if strings.Contains(out.String(), "Done!") {
		t.Error("REPL started without worlds")
	}
}

func TestRunCorruptFirstWorld(t *testing.T) {
	save := t.TempDir()
	p := filepath.Join(save, "data", "rer_worldgen.dat")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if err := run([]string{"-dir", save, "-text"}, strings.NewReader(""), &out, &errOut); err == nil {
		t.Fatal("expected startup failure")
	}
	if strings.Contains(out.String(), "Done!") {
		t.Error("REPL started with an unreadable world")
	}
}

func TestRunConfigFile(t *testing.T) {
	save := newSave(t)
	cfgPath := writeConfig(t, "save_dir: "+save+"\nrenderer: text\nmin_level: 0\nmax_level: 2\n")
	var out, errOut bytes.Buffer
	in := strings.NewReader("stone\n")
	if err := run([]string{"-config", cfgPath}, in, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Peak: 0.900000 at level 0") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunBadFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-h"}, strings.NewReader(""), &out, &errOut); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
	if err := run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, strings.NewReader(""), &out, &errOut); err == nil {
		t.Error("expected error for a missing config file")
	}
}
