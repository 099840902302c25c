package enum

import "fmt"

// Station is the preparation area an item is routed to.
type Station string

const (
	StationKitchen Station = "KITCHEN"
	StationBarista Station = "BARISTA"
)

// Stations lists every preparation station, in no particular order.
func Stations() []Station {
	return []Station{StationKitchen, StationBarista}
}

func (s Station) Valid() bool {
	return s == StationKitchen || s == StationBarista
}

func (s Station) String() string {
	return string(s)
}

// ParseStation converts a string into a Station, rejecting unknown values.
func ParseStation(s string) (Station, error) {
	st := Station(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown station %q", s)
	}
	return st, nil
}
