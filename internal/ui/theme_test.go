package ui

import "testing"

func TestThemeNames(t *testing.T) {
	dark := ThemeNames(true)
	if len(dark) != 3 || dark[0] != "Nightfox" {
		t.Fatalf("ThemeNames(dark) = %v, want Nightfox first of 3", dark)
	}
	light := ThemeNames(false)
	if len(light) != 2 || light[0] != "Dayfox" {
		t.Fatalf("ThemeNames(light) = %v, want Dayfox first of 2", light)
	}
	for _, name := range append(append([]string{}, dark...), light...) {
		if _, ok := themes[name]; !ok {
			t.Fatalf("theme %q listed but not defined", name)
		}
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct {
		current string
		dark    bool
		want    string
	}{
		{"Nightfox", true, "Kanagawa"},
		{"Slate", true, "Nightfox"},
		{"Dayfox", false, "Lotus"},
		{"Lotus", false, "Dayfox"},
		{"Unknown", true, "Nightfox"},
		{"Nightfox", false, "Dayfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current, tt.dark); got != tt.want {
			t.Fatalf("NextTheme(%q, %v) = %q, want %q", tt.current, tt.dark, got, tt.want)
		}
	}
}

func TestGetTheme_MatchesMode(t *testing.T) {
	if got := GetTheme("Kanagawa", true); got.Name != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa, dark) = %q", got.Name)
	}
	// A dark theme name in light mode falls back to the light default.
	if got := GetTheme("Kanagawa", false); got.Name != "Dayfox" {
		t.Fatalf("GetTheme(Kanagawa, light) = %q, want Dayfox", got.Name)
	}
	if got := GetTheme("", true); got.Name != "Nightfox" {
		t.Fatalf("GetTheme(empty, dark) = %q, want Nightfox", got.Name)
	}
	for name, th := range themes {
		if th.Name != name {
			t.Fatalf("themes[%q].Name = %q", name, th.Name)
		}
		if th.Background == "" || th.Text == "" || th.Favorite == "" {
			t.Fatalf("theme %q has empty colors", name)
		}
	}
}
