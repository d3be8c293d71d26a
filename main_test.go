package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Cleanup(func() { configPath, dataPath, sheetName = "", "", "" })

	dataPath = "other.xlsx"
	sheetName = "Annual"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Climate.Data != "other.xlsx" || cfg.Climate.Sheet != "Annual" {
		t.Fatalf("climate = %+v", cfg.Climate)
	}
}

func TestRunStats(t *testing.T) {
	t.Cleanup(func() { dataPath = "" })

	dataPath = filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(dataPath, []byte("date,temperature\n1900,10\n1901,12\n1902,11\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	if err := runStats(cmd, nil); err != nil {
		t.Fatalf("runStats: %v", err)
	}
	for _, want := range []string{"rows:             3", "years:            1900-1902", "mean temperature: 11.000"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
