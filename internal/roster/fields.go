package roster

// Field names a column in the artist table. The set is versioned with the
// code: adding a column means adding a constant here and extending Columns.
type Field string

const (
	FieldTagline       Field = "Tagline"
	FieldDay           Field = "Day"
	FieldStartTime     Field = "Start Time"
	FieldEndTime       Field = "End Time"
	FieldStage         Field = "Stage"
	FieldGenre         Field = "Genre"
	FieldCountry       Field = "Country"
	FieldBio           Field = "Bio"
	FieldWebsite       Field = "Website"
	FieldSpotify       Field = "Spotify"
	FieldYouTube       Field = "YouTube"
	FieldInstagram     Field = "Instagram"
	FieldAISummary     Field = "AI Summary"
	FieldAIRating      Field = "AI Rating"
	FieldMyTake        Field = "My take"
	FieldMyRating      Field = "My rating"
	FieldActSize       Field = "Number of People in Act"
	FieldFrontGender   Field = "Gender of Front Person"
	FieldFrontPoC      Field = "Front Person of Color?"
	FieldFestivalURL   Field = "Festival URL"
	FieldFestivalBioNL Field = "Festival Bio (NL)"
	FieldFestivalBioEN Field = "Festival Bio (EN)"
	FieldSocialLinks   Field = "Social Links"
)

// Flag names a derived-flag column: a boolean marking a one-time fetch as
// already performed. Flags are independent of field content; clearing a field
// does not clear its flag, only an explicit reset does.
type Flag string

const (
	FlagImagesScraped Flag = "Images Scraped"
	FlagLinksScraped  Flag = "Links Scraped"
	FlagBioTranslated Flag = "Bio Translated"
)

// columnArtist and columnCancelled are fixed columns that live outside the
// open field set: the display name and the withdrawal marker.
const (
	columnArtist    = "Artist"
	columnCancelled = "Cancelled"
)

// fieldOrder is the canonical column order for data fields.
var fieldOrder = []Field{
	FieldTagline,
	FieldDay,
	FieldStartTime,
	FieldEndTime,
	FieldStage,
	FieldGenre,
	FieldCountry,
	FieldBio,
	FieldWebsite,
	FieldSpotify,
	FieldYouTube,
	FieldInstagram,
	FieldAISummary,
	FieldAIRating,
	FieldMyTake,
	FieldMyRating,
	FieldActSize,
	FieldFrontGender,
	FieldFrontPoC,
	FieldFestivalURL,
	FieldFestivalBioNL,
	FieldFestivalBioEN,
	FieldSocialLinks,
}

var flagOrder = []Flag{
	FlagImagesScraped,
	FlagLinksScraped,
	FlagBioTranslated,
}

// protectedFields are immutable to automated (scrape/AI) writes once a
// non-empty value is present. Only a manual edit may change them.
var protectedFields = map[Field]bool{
	FieldAISummary: true,
	FieldAIRating:  true,
	FieldMyTake:    true,
	FieldMyRating:  true,
}

// Fields returns the canonical data-field order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Flags returns the canonical derived-flag order.
func Flags() []Flag {
	out := make([]Flag, len(flagOrder))
	copy(out, flagOrder)
	return out
}

// Protected reports whether automated sources may never overwrite a non-empty
// value of the field.
func Protected(f Field) bool {
	return protectedFields[f]
}

// KnownField reports whether the name is a declared data field.
func KnownField(name string) bool {
	for _, f := range fieldOrder {
		if string(f) == name {
			return true
		}
	}
	return false
}
