package servings

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("servings %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCLI(t, "--help")
	if !strings.Contains(out, "scale") || !strings.Contains(out, "report") {
		t.Fatalf("expected help to list commands, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servings.db")
	for i := 0; i < 2; i++ {
		out := runCLI(t, "--db", path, "init")
		if !strings.Contains(out, path) {
			t.Fatalf("init run %d: unexpected output %q", i+1, out)
		}
	}
}

func TestUnitsCommands(t *testing.T) {
	if out := runCLI(t, "units", "classify", "cup (8 fl oz)"); strings.TrimSpace(out) != "volume" {
		t.Fatalf("expected volume, got %q", out)
	}
	if out := runCLI(t, "units", "grams", "2", "oz"); strings.TrimSpace(out) != "56.699 g" {
		t.Fatalf("expected 56.699 g, got %q", out)
	}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"units", "classify", "banana"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected strict classify of banana to fail")
	}
}

func TestScaleCommandJSON(t *testing.T) {
	out := runCLI(t, "scale",
		"--name", "Coffee",
		"--serving-qty", "1",
		"--serving-unit", "cup (8 fl oz)",
		"--nutrient", "203=8",
		"--nutrient", "208=100",
		"--qty", "16",
		"--unit", "oz",
		"--json",
	)
	var got struct {
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
		Servings  float64 `json:"servings"`
		Nutrients struct {
			Calories float64 `json:"calories"`
			Protein  float64 `json:"protein"`
		} `json:"nutrients"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode scale output: %v\n%s", err, out)
	}
	if got.Quantity != 16 || got.Unit != "fl oz" {
		t.Fatalf("expected 16 fl oz, got %v %q", got.Quantity, got.Unit)
	}
	if math.Abs(got.Servings-2) > 1e-9 || math.Abs(got.Nutrients.Protein-16) > 1e-9 || math.Abs(got.Nutrients.Calories-200) > 1e-9 {
		t.Fatalf("unexpected scaled values: %+v", got)
	}
}

func TestLogEntryReportFlow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "servings.db")

	out := runCLI(t, "--db", path, "log", "add",
		"--name", "Bread",
		"--serving-unit", "slice",
		"--serving-grams", "30",
		"--nutrient", "208=80",
		"--nutrient", "203=3",
		"--qty", "2",
		"--unit", "slice",
		"--date", "2026-02-10",
		"--meal", "breakfast",
		"--json",
	)
	var logged entryView
	if err := json.Unmarshal([]byte(out), &logged); err != nil {
		t.Fatalf("decode log output: %v\n%s", err, out)
	}
	if len(logged.Groups) != 1 || len(logged.Groups[0].Items) != 1 {
		t.Fatalf("unexpected logged entry: %+v", logged)
	}
	if logged.Groups[0].Items[0].Facts.Calories != 160 {
		t.Fatalf("expected 160 kcal, got %v", logged.Groups[0].Items[0].Facts.Calories)
	}

	importPath := filepath.Join(dir, "meal.json")
	meal := `{
  "date": "2026-02-11",
  "meal_type": "lunch",
  "groups": [
    {"name": "Salad", "items": [
      {"name": "Spinach", "serving": {"serving_quantity": 100, "serving_unit": "g", "nutrients": {"208": 23, "303": 2.7}},
       "portion": {"quantity": 50, "unit": "g"}}
    ]}
  ]
}`
	if err := os.WriteFile(importPath, []byte(meal), 0o600); err != nil {
		t.Fatalf("write import file: %v", err)
	}
	runCLI(t, "--db", path, "log", "import", importPath)

	show := runCLI(t, "--db", path, "entry", "show", logged.ID.String())
	if !strings.Contains(show, "[Bread]") || !strings.Contains(show, "Meal: breakfast") {
		t.Fatalf("unexpected entry show output %q", show)
	}

	csvPath := filepath.Join(dir, "report.csv")
	runCLI(t, "--db", path, "report", "--from", "2026-02-10", "--to", "2026-02-11", "--format", "csv", "--out", csvPath)
	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("open csv report: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv report: %v", err)
	}
	var totalKcal string
	for _, r := range records {
		if r[0] == "total" && r[2] == "Calories" {
			totalKcal = r[3]
		}
	}
	// 2 slices bread (160) + 50 g spinach (11.5)
	if totalKcal != "171.50" {
		t.Fatalf("expected total 171.50 kcal, got %q", totalKcal)
	}

	runCLI(t, "--db", path, "entry", "remove-item", logged.Groups[0].Items[0].ID.String())
	list := runCLI(t, "--db", path, "entry", "list")
	if strings.Contains(list, logged.ID.String()) {
		t.Fatalf("expected entry removed with its only item, got %q", list)
	}

	runCLI(t, "--db", path, "config", "set", "strict_units", "true")
	if got := runCLI(t, "--db", path, "config", "get", "strict_units"); strings.TrimSpace(got) != "true" {
		t.Fatalf("expected strict_units true, got %q", got)
	}
}
