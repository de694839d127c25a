package shared

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Corporate Law", "corporate-law"},
		{"  Family  LAW ", "family-law"},
		{"Mergers & Acquisitions", "mergers-acquisitions"},
		{"Café Législation", "cafe-legislation"},
		{"already-a-slug", "already-a-slug"},
		{"  !! ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Admin@LawFirm.COM "); got != "admin@lawfirm.com" {
		t.Fatalf("unexpected result: %q", got)
	}
}
