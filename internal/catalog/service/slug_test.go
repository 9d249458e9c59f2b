package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Big Bouncer", "big-bouncer"},
		{"  Château Gonflable  ", "chateau-gonflable"},
		{"Mega!! Slide 3000", "mega-slide-3000"},
		{"---already---dashed---", "already-dashed"},
		{"UPPER case", "upper-case"},
		{"çédille & ümlaut", "cedille-umlaut"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.input); got != c.want {
			t.Fatalf("Slugify(%q): expected %q, got %q", c.input, c.want, got)
		}
	}
}
