package constants

const (
	// NotSpecified stands in for any field the document does not mention.
	NotSpecified = "Not specified"
	// UnknownModel is the model sentinel when no model pattern matches.
	UnknownModel = "Unknown Model"
	// RawTextPreviewLen bounds the raw_text debug field.
	RawTextPreviewLen = 500
)

// NotSpecifiedList returns a fresh single-element sentinel collection.
func NotSpecifiedList() []string {
	return []string{NotSpecified}
}
