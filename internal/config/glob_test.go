package config

import "testing"

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, rel string
		want         bool
	}{
		{"*.ts", "a.ts", true},
		{"*.ts", "src/a.ts", true},
		{"*.ts", "a.js", false},
		{"src/*.js", "src/a.js", true},
		{"src/*.js", "src/x/a.js", false},
		{"src/**/*.js", "src/a.js", true},
		{"src/**/*.js", "src/x/y/a.js", true},
		{"legacy/**", "legacy/a.js", true},
		{"legacy/**", "other/a.js", false},
		{"./lib/*.mjs", "lib/m.mjs", true},
		{"**", "any/thing.js", true},
		{"src/{a,b}.js", "src/b.js", true},
		{"src/[!x]*.js", "src/x1.js", false},
	}
	for _, tc := range cases {
		if got := matchGlob(tc.pattern, tc.rel); got != tc.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tc.pattern, tc.rel, got, tc.want)
		}
	}
}

func TestValidatePattern(t *testing.T) {
	for _, p := range []string{"*.ts", "src/**/*.js", "./lib/*.mjs", "{a,b}/*.js"} {
		if err := validatePattern(p); err != nil {
			t.Errorf("validatePattern(%q) = %v", p, err)
		}
	}
	for _, p := range []string{"", "  ", "[", "src/{a,b"} {
		if err := validatePattern(p); err == nil {
			t.Errorf("validatePattern(%q) accepted a bad pattern", p)
		}
	}
}
