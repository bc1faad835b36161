package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a music expert providing accurate, factual information about artists. Return only valid JSON."

const extractionSystemPrompt = "You are a precise data extraction assistant. Extract only explicitly stated facts. Return valid JSON."

// enrichmentPrompt builds the per-artist enrichment prompt. When an existing
// bio is supplied the model is told to treat it as the source of truth and to
// preserve it verbatim.
func enrichmentPrompt(artistName, existingBio string) string {
	bioInstruction := `
    "Bio": "concise 1-2 sentence biography focusing on their music style and achievements",`
	contextNote := ""
	if existingBio != "" {
		bioInstruction = fmt.Sprintf(`
    "Bio": %q (PRESERVE THIS EXACT BIO - do not change or rewrite it),`, existingBio)
		contextNote = fmt.Sprintf("\n\nCONTEXT: The artist's bio is: %q\nUse this bio as the primary source of truth. Base your critical assessment on the information in this bio, not on speculation or generic statements.", existingBio)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide comprehensive information about the musical artist %q in JSON format with these exact fields:%s\n\n", artistName, contextNote)
	fmt.Fprintf(&b, `{
    "Genre": "primary genre(s), separated by /",
    "Country": "country of origin (use short names: UK, USA, DR Congo, etc.)",%s
    "AI Summary": "brief critical assessment based on the bio provided or from reviews/consensus - BE SPECIFIC about their sound/style, avoid generic phrases like 'emerging artist' or 'shows promise' (or empty string if no bio and insufficient public info)",
    "AI Rating": "rating from 1-10 based on critical acclaim, live reputation, and artistic significance (or empty string if insufficient info)",
    "Spotify": "full Spotify artist URL (https://open.spotify.com/artist/...)",
    "Number of People in Act": "number as integer, or empty if solo/varies",
    "Gender of Front Person": "Male/Female/Mixed/Non-binary",
    "Front Person of Color?": "Yes/No"
}

CRITICAL GUIDELINES:
- If a bio is provided in the context, use it as your PRIMARY source - extract genre, country, and style details from it
- AVOID generic phrases like "emerging artist with growing following" - be specific about their musical style
- Provide information for ALL artists unless they are completely unknown (no online presence whatsoever)
- For artists without bio: provide genre, country, basic info, but leave AI Summary/rating empty if you lack details
- AI Rating: VALUE innovation, freshness, and emerging talent - new artists with unique sound or buzz deserve 7-9, not 4-5
- DISCOVERY FOCUS: treat being "new" or "emerging" as a POSITIVE attribute, not a limitation

RATING SCALE (USE THE FULL RANGE - weighted for discoverability):
- 10: reserved ONLY for universally acclaimed legends
- 8-9: exceptional artists, established or emerging with innovative sound and strong buzz
- 6-7: quality artists with good reviews and an interesting musical approach
- 4-5: developing artists with potential, or established acts with mixed reception
- 1-3: very limited appeal, poor reviews, or completely unknown
- Use official Spotify URLs only
- For groups with multiple frontpeople, use "Mixed" for gender
- Use "Yes" for Front Person of Color only if confirmed, otherwise "No"
- Leave "Number of People in Act" empty for solo artists or when it varies (DJs, producers)
- Use abbreviated country names: "UK" not "United Kingdom", "USA" not "United States"
- When in doubt about ANY field, leave it empty rather than guessing

Return ONLY valid JSON, no additional text.`, bioInstruction)
	return b.String()
}

// extractionPrompt builds the conservative facts-only prompt used to mine a
// festival-supplied bio when the model had no public data of its own.
func extractionPrompt(artistName, festivalBio string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract ONLY explicitly stated factual information from this festival bio for artist %q.\n", artistName)
	b.WriteString("Be extremely conservative - only include information that is clearly stated. If not explicitly mentioned, return empty string.\n\n")
	fmt.Fprintf(&b, "Festival Bio:\n%s\n\n", festivalBio)
	b.WriteString(`Extract the following if explicitly stated:
1. Genre: musical style/genre explicitly mentioned
2. Country: country explicitly mentioned, or a city name that clearly indicates the country
3. Number of People in Act: group size if stated ("trio" = 3, "duo" = 2, "solo" = 1)
4. Gender of Front Person: only if pronouns are used consistently or it is explicitly stated; "Mixed" if multiple genders
5. Front Person of Color?: ONLY if the bio explicitly mentions ethnicity or heritage that clearly indicates it; leave empty if uncertain

Return valid JSON with these exact keys (use empty string if not found):
{
  "Genre": "...",
  "Country": "...",
  "Number of People in Act": "...",
  "Gender of Front Person": "...",
  "Front Person of Color?": ""
}`)
	return b.String()
}
