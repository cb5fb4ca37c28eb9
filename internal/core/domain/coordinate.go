package domain

// Coordinate is a latitude/longitude pair extracted from free text.
// Raw preserves the exact matched substring so duplicates can be
// collapsed and the text can be removed from the source line.
type Coordinate struct {
	// Lat is the latitude in decimal degrees, -90 to 90.
	Lat float64

	// Lng is the longitude in decimal degrees, -180 to 180.
	Lng float64

	// Raw is the exact substring the coordinate was parsed from.
	Raw string
}

// Valid returns true if the coordinate is within the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
