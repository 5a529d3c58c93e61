package pagination

import (
	"fmt"
	"testing"
)

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line %02d", i)
	}
	return out
}

func TestPages(t *testing.T) {
	cases := []struct {
		lines   int
		perPage int
		want    []int
	}{
		{0, 15, nil},
		{1, 15, []int{1}},
		{15, 15, []int{15}},
		{16, 15, []int{15, 1}},
		{31, 15, []int{15, 15, 1}},
		{5, 0, []int{5}},
	}

	for _, c := range cases {
		pages := Pages(lines(c.lines), c.perPage)
		if len(pages) != len(c.want) {
			t.Errorf("Pages(%d, %d): got %d pages, want %d",
				c.lines, c.perPage, len(pages), len(c.want))
			continue
		}
		for i, page := range pages {
			if len(page) != c.want[i] {
				t.Errorf("Pages(%d, %d): page %d has %d lines, want %d",
					c.lines, c.perPage, i, len(page), c.want[i])
			}
		}
	}
}

func TestEmbedsSinglePage(t *testing.T) {
	embeds := Embeds("Title", 0x3498DB, lines(3), 15)
	if len(embeds) != 1 {
		t.Fatal("unexpected embed count:", len(embeds))
	}
	if embeds[0].Footer != nil {
		t.Error("single page should not have a footer")
	}
	if embeds[0].Title != "Title" {
		t.Error("unexpected title:", embeds[0].Title)
	}
}

func TestEmbedsMultiPage(t *testing.T) {
	embeds := Embeds("Title", 0x3498DB, lines(31), 15)
	if len(embeds) != 3 {
		t.Fatal("unexpected embed count:", len(embeds))
	}

	for i, e := range embeds {
		want := fmt.Sprintf("Page %d/3", i+1)
		if e.Footer == nil || e.Footer.Text != want {
			t.Errorf("embed %d: missing or wrong footer, want %q", i, want)
		}
	}
}
