package config

// Region codes the tool accepts. The provider recognizes more, but the
// recognized set keeps typos from silently returning a global feed.
var regions = map[string]bool{
	"AU": true, "BR": true, "CA": true, "DE": true, "ES": true,
	"FR": true, "GB": true, "ID": true, "IN": true, "IT": true,
	"JP": true, "KR": true, "MX": true, "NL": true, "PH": true,
	"RU": true, "SE": true, "TH": true, "TW": true, "US": true,
	"VN": true,
}

func IsValidRegion(code string) bool {
	return regions[code]
}

// categoryIDs maps the configurable category names to the provider's
// numeric video category IDs.
var categoryIDs = map[string]string{
	"film":          "1",
	"autos":         "2",
	"music":         "10",
	"pets":          "15",
	"sports":        "17",
	"travel":        "19",
	"gaming":        "20",
	"people":        "22",
	"comedy":        "23",
	"entertainment": "24",
	"news":          "25",
	"howto":         "26",
	"education":     "27",
	"science":       "28",
	"nonprofits":    "29",
}

// CategoryID resolves a configured category name to its provider ID.
// The empty name resolves to no category restriction.
func CategoryID(name string) (string, bool) {
	if name == "" {
		return "", true
	}
	id, ok := categoryIDs[name]
	return id, ok
}
