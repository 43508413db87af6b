package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

const robotCfg = `
# demonstration robot
[delta_robot]
base_side: 660
platform_side: 90
upper_arm_length: 200
lower_arm_length = 530
parallelogram_width: 70   ; not used by the solver

[pose home]
z: -500

[pose  joints]
phi1: 10
phi2: 20
phi3: 30
`

func TestLoadString(t *testing.T) {
	cfg, err := LoadString(robotCfg)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	if !cfg.HasSection("delta_robot") {
		t.Error("expected [delta_robot] section to exist")
	}
	if !cfg.HasSection("pose joints") {
		t.Error("expected section header whitespace to be normalised")
	}
	if cfg.HasSection("nonexistent") {
		t.Error("expected [nonexistent] section to not exist")
	}

	want := []string{"delta_robot", "pose home", "pose joints"}
	got := cfg.GetSectionNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected sections %v, got %v", want, got)
	}

	sec, err := cfg.GetSection("delta_robot")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	v, err := sec.GetFloat("lower_arm_length")
	if err != nil {
		t.Fatalf("GetFloat failed: %v", err)
	}
	if v != 530 {
		t.Errorf("expected 530, got %v", v)
	}
	w, err := sec.Get("parallelogram_width")
	if err != nil || w != "70" {
		t.Errorf("expected inline comment stripped, got %q (%v)", w, err)
	}
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty header", "[ ]\n"},
		{"malformed line", "[delta_robot]\nbase_side 660\n"},
		{"include without file", "[include extra.cfg]\n"},
	}
	for _, tt := range tests {
		if _, err := LoadString(tt.data); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestMissingSectionAndOption(t *testing.T) {
	cfg, _ := LoadString("[delta_robot]\nbase_side: 660\n")

	_, err := cfg.GetSection("missing")
	if !derrors.Is(err, derrors.ErrConfigSection) {
		t.Errorf("expected CONFIG_SECTION, got %v", err)
	}

	sec, _ := cfg.GetSection("delta_robot")
	_, err = sec.Get("missing")
	var de *derrors.DeltaError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DeltaError, got %T", err)
	}
	if de.Code != derrors.ErrConfigOption {
		t.Errorf("expected CONFIG_OPTION, got %s", de.Code)
	}
	if de.Section != "delta_robot" || de.Option != "missing" {
		t.Errorf("unexpected location %s.%s", de.Section, de.Option)
	}

	fallback, err := sec.Get("missing", "x")
	if err != nil || fallback != "x" {
		t.Errorf("expected fallback, got %q (%v)", fallback, err)
	}
}

func TestGetFloatTypeError(t *testing.T) {
	cfg, _ := LoadString("[delta_robot]\nbase_side: wide\n")
	sec, _ := cfg.GetSection("delta_robot")

	_, err := sec.GetFloat("base_side")
	if !derrors.Is(err, derrors.ErrConfigType) {
		t.Errorf("expected CONFIG_TYPE, got %v", err)
	}
}

func TestBoundsChecking(t *testing.T) {
	cfg, err := LoadString("[test]\nvalue: 50\n")
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	sec, _ := cfg.GetSection("test")

	v, err := sec.GetFloatWithBounds("value", Between(0, 100))
	if err != nil {
		t.Fatalf("GetFloatWithBounds failed: %v", err)
	}
	if v != 50.0 {
		t.Errorf("expected 50.0, got %f", v)
	}

	if _, err := sec.GetFloatWithBounds("value", Between(60, 100)); err == nil {
		t.Error("expected error for value below minimum")
	}
	if _, err := sec.GetFloatWithBounds("value", Between(0, 40)); err == nil {
		t.Error("expected error for value above maximum")
	}
	_, err = sec.GetFloatWithBounds("value", Above(50))
	if !derrors.Is(err, derrors.ErrConfigValidation) {
		t.Errorf("expected CONFIG_VALIDATION for value not above threshold, got %v", err)
	}
	below := 50.0
	if _, err := sec.GetFloatWithBounds("value", FloatBounds{Below: &below}); err == nil {
		t.Error("expected error for value not below threshold")
	}
}

func TestAccessTracking(t *testing.T) {
	cfg, _ := LoadString(robotCfg + "\n[unrelated]\nfoo: 1\n")

	if _, err := LoadDimensions(cfg); err != nil {
		t.Fatalf("LoadDimensions failed: %v", err)
	}
	if err := cfg.CheckUnusedOptions(); err != nil {
		t.Errorf("expected no unused options, got %v", err)
	}

	unused := cfg.GetUnusedSections()
	if len(unused) != 3 {
		t.Errorf("expected pose sections and [unrelated] unused, got %v", unused)
	}

	typo, _ := LoadString(strings.Replace(robotCfg, "platform_side: 90",
		"platform_side: 90\nupper_arm_lenght: 210", 1))
	if _, err := LoadDimensions(typo); err != nil {
		t.Fatalf("LoadDimensions failed: %v", err)
	}
	err := typo.CheckUnusedOptions()
	if !derrors.Is(err, derrors.ErrConfigValidation) || !strings.Contains(err.Error(), "upper_arm_lenght") {
		t.Errorf("expected misspelt option to be reported, got %v", err)
	}
}

func TestGetFloatRejectsNonFinite(t *testing.T) {
	cfg, _ := LoadString("[delta_robot]\nmax_negative_angle: nan\nbase_side: +Inf\nupper_arm_length: -inf\n")
	sec, _ := cfg.GetSection("delta_robot")

	for _, option := range []string{"max_negative_angle", "base_side", "upper_arm_length"} {
		if _, err := sec.GetFloat(option); !derrors.Is(err, derrors.ErrConfigValidation) {
			t.Errorf("%s: expected CONFIG_VALIDATION, got %v", option, err)
		}
	}
	// NaN would otherwise pass every comparison
	if _, err := sec.GetFloatWithBounds("max_negative_angle", Between(-90, 0)); err == nil {
		t.Error("expected bounded getter to reject nan")
	}
}

func TestLoadWithInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "poses.cfg"), "[pose a]\nx: 10\nz: -450\n")
	writeFile(t, filepath.Join(dir, "robot.cfg"),
		"[include poses.cfg]\n[delta_robot]\nbase_side: 660\n")

	cfg, err := Load(filepath.Join(dir, "robot.cfg"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.HasSection("pose a") || !cfg.HasSection("delta_robot") {
		t.Errorf("expected included sections, got %v", cfg.GetSectionNames())
	}
}

func TestLoadRecursiveInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cfg"), "[include b.cfg]\n")
	writeFile(t, filepath.Join(dir, "b.cfg"), "[include a.cfg]\n")

	_, err := Load(filepath.Join(dir, "a.cfg"))
	if err == nil || !strings.Contains(err.Error(), "recursive include") {
		t.Errorf("expected recursive include error, got %v", err)
	}
}

func TestLoadMissingInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cfg"), "[include nope.cfg]\n")

	if _, err := Load(filepath.Join(dir, "a.cfg")); err == nil {
		t.Error("expected error for missing include")
	}

	// a glob that matches nothing is fine
	writeFile(t, filepath.Join(dir, "b.cfg"), "[include extra/*.cfg]\n[delta_robot]\nbase_side: 1\n")
	if _, err := Load(filepath.Join(dir, "b.cfg")); err != nil {
		t.Errorf("expected empty glob to be accepted, got %v", err)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
