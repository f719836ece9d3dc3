package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/renderers/tui"
)

func TestRunRendersHTMLFromDescriptorFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-source", "testdata/dress.yaml",
		"-form", "dress",
		"-value", "1=вечернее",
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	html := stdout.String()
	for _, fragment := range []string{
		`<h2 class="paramform-title">Платье</h2>`,
		`value="вечернее"`,
		`<option value="макси" selected>макси</option>`,
		`type="number"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRunListsForms(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", "testdata", "-list"}, &stdout, &stderr, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != "dress\n" {
		t.Fatalf("unexpected listing %q", stdout.String())
	}
}

func TestRunAppliesThemeManifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-source", "testdata/dress.yaml",
		"-form", "dress",
		"-theme-manifest", "testdata/theme.yaml",
		"-theme-variant", "dark",
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	html := stdout.String()
	for _, fragment := range []string{
		`style="--brand: #8a3b12; --surface: #1d1410"`,
		`<link rel="stylesheet" href="/assets/themes/atelier/atelier.dark.css">`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRunAppliesThemeFromConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", "ex.config.toml",
		"-renderer", "vanilla",
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	html := stdout.String()
	for _, fragment := range []string{
		`--surface: #1d1410`,
		`href="/assets/themes/atelier/atelier.dark.css"`,
		`value="68"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRunDetectsOpenAPISource(t *testing.T) {
	var listing, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", "testdata/catalogue.yaml", "-list"}, &listing, &stderr, nil); err != nil {
		t.Fatalf("list: %v\n%s", err, stderr.String())
	}
	if listing.String() != "listDresses\n" {
		t.Fatalf("unexpected listing %q", listing.String())
	}

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-source", "testdata/catalogue.yaml",
		"-form", "listDresses",
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	html := stdout.String()
	for _, fragment := range []string{
		`<h2 class="paramform-title">List dresses</h2>`,
		`<label for="paramform-2">Page Size:</label>`,
		`value="20"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRunTerminalSessionLogsChanges(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"вечернее", "70"},
		selects: []int{0},
	}
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-source", "testdata/dress.yaml",
		"-form", "dress",
		"-renderer", "tui",
		"-log-level", "info",
	}, &stdout, &stderr, driver)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	var got map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output %q: %v", stdout.String(), err)
	}
	want := map[string]string{"1": "вечернее", "2": "мини", "3": "70"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if n := strings.Count(stderr.String(), "param changed"); n != 3 {
		t.Fatalf("expected 3 change log lines, got %d:\n%s", n, stderr.String())
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.html")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-openapi", "testdata/catalogue.yaml",
		"-operation", "listDresses",
		"-output", path,
	}, &stdout, &stderr, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<label for="paramform-2">Page Size:</label>`) || !strings.Contains(string(data), `value="20"`) {
		t.Fatalf("unexpected output:\n%s", data)
	}
}

func TestRunErrors(t *testing.T) {
	cases := map[string][]string{
		"no selector":          {},
		"form needs source":    {"-form", "dress"},
		"operation needs doc":  {"-operation", "listDresses"},
		"bad value flag":       {"-value", "nope"},
		"missing source":       {"-source", "testdata/missing.yaml", "-form", "dress"},
		"unknown renderer":     {"-source", "testdata", "-form", "dress", "-renderer", "pdf"},
		"bad format":           {"-source", "testdata", "-form", "dress", "-format", "xml"},
		"theme needs manifest": {"-source", "testdata", "-form", "dress", "-theme", "atelier"},
		"missing manifest":     {"-source", "testdata", "-form", "dress", "-theme-manifest", "testdata/missing.yaml"},
		"invalid manifest":     {"-source", "testdata", "-form", "dress", "-theme-manifest", "testdata/dress.yaml"},
		"two openapi docs":     {"-source", "testdata/catalogue.yaml", "-openapi", "other.yaml", "-form", "listDresses"},
	}
	for name, args := range cases {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), args, &stdout, &stderr, nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

type scriptedDriver struct {
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}
