package utils

import "testing"

func TestNormalizeSuburb(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"ascot vale", "ASCOT_VALE"},
		{"  Ascot   Vale ", "ASCOT_VALE"},
		{"STANMORE", "STANMORE"},
		{"jervis_bay", "JERVIS_BAY"},
		{"Pérth", "PERTH"},
	}

	for _, c := range cases {
		if got := NormalizeSuburb(c.in); got != c.expect {
			t.Errorf("NormalizeSuburb(%q) == %q, expected %q", c.in, got, c.expect)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"auction", "auction"},
		{"  AuctION ", "auction"},
		{"  pRIVate SALE ", "private_sale"},
		{"By  Negotiation", "by_negotiation"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizeLabel(c.in); got != c.expect {
			t.Errorf("NormalizeLabel(%q) == %q, expected %q", c.in, got, c.expect)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \t b\n c  "); got != "a b c" {
		t.Errorf("CollapseSpaces == %q", got)
	}
	if got := DisplaySuburb("ASCOT_VALE"); got != "ASCOT VALE" {
		t.Errorf("DisplaySuburb == %q", got)
	}
}
