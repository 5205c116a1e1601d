package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp moves into a fresh temp dir for the duration of the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	origWd, _ := os.Getwd()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origWd) })
	return tempDir
}

func TestRun_NoArgs(t *testing.T) {
	dir := chdirTemp(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)
	if code == 0 {
		t.Fatal("expected non-zero exit code")
	}
	if got := stderr.String(); got != usageLine+"\n" {
		t.Errorf("stderr = %q, want usage line", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no files should be created, found %d", len(entries))
	}
}

func TestRun_EndToEnd(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("test.bin", []byte{0x00, 0x41, 0xFF}, 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"test.bin"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout.String(), stderr.String())
	}

	got, err := os.ReadFile("test.bin.c")
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	want := "static const char test_bin[] = \n\t\"\\x00\\x41\\xff\";\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_EmptyFile(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("empty.dat", nil, 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"empty.dat"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	got, err := os.ReadFile("empty.dat.c")
	if err != nil {
		t.Fatal(err)
	}
	if want := "static const char empty_dat[] = \n\t\"\";\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := chdirTemp(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"nope.bin"}, &stdout, &stderr)
	if code == 0 {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(stderr.String(), "Error: failed to read nope.bin") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "nope.bin.c")); !os.IsNotExist(err) {
		t.Error("output should not be created")
	}
}

func TestRun_ExtraArgsIgnored(t *testing.T) {
	chdirTemp(t)

	os.WriteFile("a.bin", []byte{1}, 0644)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"a.bin", "b.bin"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat("a.bin.c"); err != nil {
		t.Errorf("a.bin.c missing: %v", err)
	}
	if _, err := os.Stat("b.bin.c"); !os.IsNotExist(err) {
		t.Error("b.bin.c should not exist")
	}
}

func TestRun_ConfigAndVerbose(t *testing.T) {
	chdirTemp(t)

	os.WriteFile("icon.png", bytes.Repeat([]byte{0x7f}, 6), 0644)
	cfg := "output:\n  atomic: false\n  wrap_width: 9\n"
	os.WriteFile("to-data.yaml", []byte(cfg), 0644)

	var stdout, stderr bytes.Buffer
	args := []string{"--config", "to-data.yaml", "--verbose", "--log-file", "logs/run.log", "--log-level", "debug", "icon.png"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	got, err := os.ReadFile("icon.png.c")
	if err != nil {
		t.Fatal(err)
	}
	want := "static const char icon_png[] = \n" +
		"\t\"\\x7f\\x7f\"\n" +
		"\t\"\\x7f\\x7f\"\n" +
		"\t\"\\x7f\\x7f\"\n" +
		"\t\"\";\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if !strings.Contains(stdout.String(), "icon.png.c (6 bytes)") {
		t.Errorf("verbose output = %q", stdout.String())
	}

	logData, err := os.ReadFile(filepath.Join("logs", "run.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logData), "read input") {
		t.Errorf("debug log missing: %q", logData)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	chdirTemp(t)

	os.WriteFile("x.bin", []byte{1}, 0644)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--log-level", "loud", "x.bin"}, &stdout, &stderr)
	if code == 0 {
		t.Fatal("expected failure")
	}
	if !strings.Contains(stderr.String(), "invalid logging level") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat("x.bin.c"); !os.IsNotExist(err) {
		t.Error("output should not be created")
	}
}
