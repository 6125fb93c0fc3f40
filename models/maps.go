package models

import "fmt"

// weekMaps holds the display names for the five weekly campaign tracks.
var weekMaps = map[int]string{
	1: "Map 1 - Short Track Alpha",
	2: "Map 2 - Short Track Beta",
	3: "Map 3 - Short Track Gamma",
	4: "Map 4 - Short Track Delta",
	5: "Map 5 - Short Track Epsilon",
}

// MapName returns the display name for a map number.
func MapName(mapNum int) string {
	if name, ok := weekMaps[mapNum]; ok {
		return name
	}
	return fmt.Sprintf("Map %d", mapNum)
}
