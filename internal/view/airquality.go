package view

// Band is a US-EPA air quality category.
type Band struct {
	Label string
	Color string
}

var epaBands = [...]Band{
	{"Good", "#00e400"},
	{"Moderate", "#ffff00"},
	{"Unhealthy for Sensitive", "#ff7e00"},
	{"Unhealthy", "#ff0000"},
	{"Very Unhealthy", "#8f3f97"},
	{"Hazardous", "#7e0023"},
}

// UnknownBand is used for indexes outside 1-6.
var UnknownBand = Band{Label: "Unknown", Color: "#9e9e9e"}

// AirQualityBand maps a US-EPA index to its band.
func AirQualityBand(index int) Band {
	if index < 1 || index > len(epaBands) {
		return UnknownBand
	}
	return epaBands[index-1]
}
