package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piqueme/gif-capture/lib"
	"github.com/piqueme/gif-capture/lib/output"
)

func TestRootCommand_HasConfig(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Use == "config" {
			found = true
		}
	}
	if !found {
		t.Error("config subcommand not registered")
	}
}

func TestConfigCommand_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "gifcap.yaml")
	if err := os.WriteFile(filename, []byte("frameRate: 20\nduration: 5s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", filename, "--fps", "15", "--output-method", "new-file"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if settings.FrameRate != 15 {
		t.Errorf("expected: %v | got %v", 15, settings.FrameRate)
	}
	if settings.Duration != 5*time.Second {
		t.Errorf("expected: %v | got %v", 5*time.Second, settings.Duration)
	}
	if settings.OutputMethod != output.MethodNewFile {
		t.Errorf("expected: %v | got %v", output.MethodNewFile, settings.OutputMethod)
	}
	if !strings.Contains(out.String(), "frameRate: 15") {
		t.Errorf("expected yaml output, got:\n%v", out.String())
	}
	if !strings.Contains(out.String(), "outputMethod: new-file") {
		t.Errorf("expected yaml output, got:\n%v", out.String())
	}
}

func TestConfigCommand_Save(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gifcap.yaml")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "--config", filename, "--colors", "64", "--save"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	loaded, err := lib.LoadSettings(filename)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MaxColors != 64 {
		t.Errorf("expected: %v | got %v", 64, loaded.MaxColors)
	}
}

func TestConfigCommand_InvalidSettings(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--quantizer", "octree"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for an unknown quantizer")
	}
}
