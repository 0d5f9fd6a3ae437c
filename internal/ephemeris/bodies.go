package ephemeris

import (
	"sort"
	"strings"

	"github.com/mshafiee/jpleph"

	"github.com/kepler-works/ephem/pkg/errs"
)

// bodyIDs maps canonical body names to kernel body identifiers.
var bodyIDs = map[string]jpleph.Planet{
	"MERCURY": jpleph.Mercury,
	"VENUS":   jpleph.Venus,
	"EARTH":   jpleph.Earth,
	"MARS":    jpleph.Mars,
	"JUPITER": jpleph.Jupiter,
	"SATURN":  jpleph.Saturn,
	"URANUS":  jpleph.Uranus,
	"NEPTUNE": jpleph.Neptune,
	"PLUTO":   jpleph.Pluto,
	"MOON":    jpleph.Moon,
	"SUN":     jpleph.Sun,
	"SSB":     jpleph.SolarSystemBarycenter,
	"EMB":     jpleph.EarthMoonBarycenter,
}

// bodyAliases are accepted alternative spellings.
var bodyAliases = map[string]string{
	"SOLAR SYSTEM BARYCENTER": "SSB",
	"SOLAR_SYSTEM_BARYCENTER": "SSB",
	"BARYCENTER":              "SSB",
	"EARTH-MOON BARYCENTER":   "EMB",
	"EARTH_MOON_BARYCENTER":   "EMB",
	"LUNA":                    "MOON",
}

// ResolveBody maps a case-insensitive body name to its kernel
// identifier.
func ResolveBody(name string) (jpleph.Planet, error) {
	canon := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := bodyAliases[canon]; ok {
		canon = alias
	}
	id, ok := bodyIDs[canon]
	if !ok {
		return 0, errs.Newf(errs.ErrQueryBody, "ephemeris.resolve",
			"unknown body %q", name).
			WithResource(name).
			WithAdvice("known bodies: " + strings.Join(BodyNames(), ", "))
	}
	return id, nil
}

// BodyNames returns the canonical body names, sorted.
func BodyNames() []string {
	names := make([]string, 0, len(bodyIDs))
	for n := range bodyIDs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bodies lists the body names this kernel resolves.
func (k *Kernel) Bodies() []string {
	return BodyNames()
}
