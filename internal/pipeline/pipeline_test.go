package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/crimson-sun/restat/internal/model"
	"github.com/crimson-sun/restat/internal/output/file"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, channels []string, inDir, outDir string) (Report, error) {
	t.Helper()
	p := New(channels, inDir, "stat-*.json", file.New(outDir))
	defer p.Close()
	return p.Run(context.Background())
}

func TestRunEndToEnd(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inDir, "stat-01.json", `[
		{"userId": "1", "guildId": "100", "guildName": "General", "userName": "", "command": "_message", "count": 2, "lastTime": 10},
		{"userId": "1", "guildId": "100", "userName": "Alice", "command": "roll", "lastTime": 20},
		{"userId": "2", "guildId": "200", "command": "_message", "lastTime": 30}
	]`)
	writeInput(t, inDir, "stat-02.json", `[
		{"userId": "3", "guildId": "300"},
		{"userId": "1", "guildId": "100", "lastTime": 40}
	]`)

	rep, err := run(t, []string{"100"}, inDir, outDir)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if rep.RunID == "" {
		t.Error("expected a run ID")
	}
	if rep.Scanned != 5 || rep.Kept != 3 {
		t.Errorf("scanned/kept = %d/%d, want 5/3", rep.Scanned, rep.Kept)
	}
	if !reflect.DeepEqual(rep.Ignored, []string{"200", "300"}) {
		t.Errorf("Ignored = %v, want [200 300]", rep.Ignored)
	}
	if rep.Processed() != 2 {
		t.Errorf("Processed = %d, want 2", rep.Processed())
	}

	wantOutputs := []OutputSummary{
		{Destination: file.UserFile, Records: 1},
		{Destination: file.MessageFile, Records: 1},
		{Destination: file.CommandFile, Records: 1},
	}
	if !reflect.DeepEqual(rep.Outputs, wantOutputs) {
		t.Errorf("Outputs = %v, want %v", rep.Outputs, wantOutputs)
	}

	data, err := os.ReadFile(filepath.Join(outDir, file.UserFile))
	if err != nil {
		t.Fatalf("read users output: %v", err)
	}
	var users []model.UserEntry
	if err := json.Unmarshal(data, &users); err != nil {
		t.Fatalf("unmarshal users: %v", err)
	}
	want := model.UserEntry{UserID: "1", ChannelID: "100", ChannelName: "General", UserName: "Alice"}
	if len(users) != 1 || users[0] != want {
		t.Errorf("users = %+v, want [%+v]", users, want)
	}
}

func TestRunEmptyAllowListIsFatal(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inDir, "stat-01.json", `[]`)

	_, err := run(t, nil, inDir, outDir)
	if !errors.Is(err, ErrEmptyAllowList) {
		t.Fatalf("expected ErrEmptyAllowList, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, file.UserFile)); !os.IsNotExist(err) {
		t.Error("no output files may be written on a fatal precondition")
	}
}

func TestRunNoInputsIsFatal(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()

	_, err := run(t, []string{"100"}, inDir, outDir)
	if !errors.Is(err, ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, file.UserFile)); !os.IsNotExist(err) {
		t.Error("no output files may be written when nothing matched")
	}
}

func TestRunSkipsMalformedFile(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inDir, "stat-01.json", `[{"userId": "1", "guildId": "100", "command": "_message", "lastTime": 1}]`)
	writeInput(t, inDir, "stat-02.json", `{broken`)
	writeInput(t, inDir, "stat-03.json", `[{"userId": "2", "guildId": "100", "command": "roll", "lastTime": 2}]`)

	rep, err := run(t, []string{"100"}, inDir, outDir)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(rep.Files) != 3 {
		t.Fatalf("got %d file outcomes, want 3", len(rep.Files))
	}
	skipped := rep.Files[1]
	if !skipped.Skipped || filepath.Base(skipped.Path) != "stat-02.json" {
		t.Errorf("outcome[1] = %+v, want stat-02.json skipped", skipped)
	}
	if skipped.Reason == "" {
		t.Error("skipped outcome should carry a reason")
	}
	if rep.Scanned != 2 || rep.Kept != 2 {
		t.Errorf("scanned/kept = %d/%d, want 2/2", rep.Scanned, rep.Kept)
	}
}

func TestRunInvalidQualifyingRecordAborts(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inDir, "stat-01.json", `[{"guildId": "100", "command": "roll", "lastTime": 1}]`)

	_, err := run(t, []string{"100"}, inDir, outDir)
	if err == nil {
		t.Fatal("expected error for qualifying record without userId")
	}
}

func TestRunDeterministicAcrossRepeats(t *testing.T) {
	inDir := t.TempDir()
	writeInput(t, inDir, "stat-01.json", `[
		{"userId": "1", "guildId": "100", "userName": "Alice", "command": "_message", "lastTime": 10},
		{"userId": "2", "guildId": "100", "userName": "Bob", "command": "roll", "lastTime": 20}
	]`)

	read := func(dir string) map[string]string {
		t.Helper()
		out := make(map[string]string)
		for _, name := range []string{file.UserFile, file.MessageFile, file.CommandFile} {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("read %s: %v", name, err)
			}
			out[name] = string(data)
		}
		return out
	}

	outA, outB := t.TempDir(), t.TempDir()
	if _, err := run(t, []string{"100"}, inDir, outA); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := run(t, []string{"100"}, inDir, outB); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(read(outA), read(outB)) {
		t.Error("identical inputs must produce byte-identical outputs")
	}
}
