package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SeasonType mirrors nfldb's season_phase enum.
type SeasonType int

const (
	Regular SeasonType = iota
	Preseason
	Postseason
)

var seasonTypeNames = map[SeasonType]string{
	Preseason:  "Preseason",
	Regular:    "Regular",
	Postseason: "Postseason",
}

func (t SeasonType) String() string {
	if s, ok := seasonTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("SeasonType(%d)", int(t))
}

// ParseSeasonType accepts the nfldb names in any case. Empty means Regular.
func ParseSeasonType(s string) (SeasonType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "reg":
		return Regular, nil
	case "preseason", "pre":
		return Preseason, nil
	case "postseason", "post", "playoffs":
		return Postseason, nil
	default:
		return Regular, fmt.Errorf("unknown season type: %q", s)
	}
}

func (t SeasonType) Valid() bool {
	_, ok := seasonTypeNames[t]
	return ok
}

func (t SeasonType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *SeasonType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseSeasonType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
