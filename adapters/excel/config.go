package excel

// DecoderConfig holds settings for the Sheet Decoder
type DecoderConfig struct {
	// Charset is passed to the legacy .xls reader
	Charset string `json:"charset"`
}

// DefaultDecoderConfig returns sensible defaults for roster uploads
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		Charset: "utf-8",
	}
}
