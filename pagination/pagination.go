// Package pagination splits rendered lines into display pages.
package pagination

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v2/discord"
)

// DefaultPageSize is the number of lines list commands show per page.
const DefaultPageSize = 15

// Pages chunks lines into groups of at most perPage. A perPage of zero or
// less yields a single page.
func Pages(lines []string, perPage int) [][]string {
	if len(lines) == 0 {
		return nil
	}
	if perPage <= 0 {
		return [][]string{lines}
	}

	var pages [][]string
	for len(lines) > perPage {
		pages = append(pages, lines[:perPage])
		lines = lines[perPage:]
	}
	return append(pages, lines)
}

// Embeds renders lines into one embed per page. Multi-page outputs get a
// "Page i/n" footer; a single page gets none.
func Embeds(title string, color discord.Color, lines []string, perPage int) []discord.Embed {
	pages := Pages(lines, perPage)

	embeds := make([]discord.Embed, 0, len(pages))
	for i, page := range pages {
		embed := discord.Embed{
			Title:       title,
			Description: strings.Join(page, "\n"),
			Color:       color,
		}
		if len(pages) > 1 {
			embed.Footer = &discord.EmbedFooter{
				Text: fmt.Sprintf("Page %d/%d", i+1, len(pages)),
			}
		}
		embeds = append(embeds, embed)
	}
	return embeds
}
