package subtitle

// Load detects the format of raw subtitle text and parses it with the
// matching parser. PAC input is rejected rather than parsed.
func Load(content, filename string) (*Document, error) {
	switch format := Detect(content, filename); format {
	case FormatSRT:
		return ParseSRT(content)
	case FormatVTT:
		return ParseVTT(content)
	case FormatTTML:
		return ParseTTML(content)
	case FormatPAC:
		return nil, &UnsupportedFormatError{Format: format}
	default:
		return nil, ErrUnknownFormat
	}
}
