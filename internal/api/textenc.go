package api

import "strings"

// An upstream system double-encodes some UTF-8 punctuation before it
// reaches the backend, so bullet, ellipsis, quote, and dash glyphs
// arrive mojibake'd. The fixed table below maps each known artifact to
// the glyph it should have been. Applied to every display text field
// before it leaves this package.
//
// "â€" is a prefix of several artifacts; the longer sequences
// are listed first because Replacer gives earlier patterns priority.
var textFixups = strings.NewReplacer(
	"â€¢", "•", // bullet
	"â€¦", "…", // ellipsis
	"â€™", "'", // right single quote
	"â€˜", "'", // left single quote
	"â€œ", "“", // left double quote
	"â€“", "–", // en dash
	"â€”", "—", // em dash
	"Â·", "·", // middle dot
	"â€", "”", // right double quote (bare prefix)
)

// CleanText applies the corrective substitution table for the known
// double-encoding artifacts in backend text fields.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	return textFixups.Replace(s)
}
