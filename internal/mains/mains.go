// Package mains resolves the local electrical mains frequency from the
// system timezone. The hum analyser uses it to pick which fundamental
// (50 or 60 Hz) to probe for in a dictation.
package mains

import (
	"fmt"
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// Hz is a mains frequency in Hertz.
type Hz int

const (
	Hz50 Hz = 50
	Hz60 Hz = 60
)

func (h Hz) String() string {
	return fmt.Sprintf("%d Hz", int(h))
}

// Local returns the mains frequency for the machine's timezone.
// Ambiguous or undetectable timezones resolve to 50 Hz, the more
// common frequency globally.
func Local() Hz {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return Hz50
	}
	return ForTimezone(timezone)
}

// ForTimezone returns the mains frequency for an IANA timezone name.
func ForTimezone(timezone string) Hz {
	// UTC/GMT carry no country association
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return Hz50
	}

	tzMap, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return Hz50
	}

	country, err := tzMap.GetCountry(timezone)
	if err != nil {
		return Hz50
	}

	// Japan splits 50/60 Hz by region; the Tokyo side is 50 Hz and most
	// populous, so it wins the tie.
	if country == "Japan" {
		return Hz50
	}
	if hz60Countries[country] {
		return Hz60
	}
	return Hz50
}

// hz60Countries lists countries on 60 Hz mains; everywhere else is 50 Hz.
// Source: https://en.wikipedia.org/wiki/Mains_electricity_by_country
var hz60Countries = map[string]bool{
	// North America
	"United States": true,
	"Canada":        true,
	"Mexico":        true,

	// Central America
	"Belize":      true,
	"Costa Rica":  true,
	"El Salvador": true,
	"Guatemala":   true,
	"Honduras":    true,
	"Nicaragua":   true,
	"Panama":      true,

	// Caribbean
	"Bahamas":             true,
	"Barbados":            true,
	"Cayman Islands":      true,
	"Cuba":                true,
	"Dominican Republic":  true,
	"Haiti":               true,
	"Jamaica":             true,
	"Puerto Rico":         true,
	"Trinidad and Tobago": true,
	"U.S. Virgin Islands": true,

	// South America (mostly 50 Hz; Brazil is mixed with 60 Hz predominant)
	"Brazil":    true,
	"Colombia":  true,
	"Ecuador":   true,
	"Guyana":    true,
	"Peru":      true,
	"Suriname":  true,
	"Venezuela": true,

	// Asia
	"South Korea":  true,
	"Taiwan":       true,
	"Philippines":  true,
	"Saudi Arabia": true,

	// Pacific
	"Guam":             true,
	"American Samoa":   true,
	"Marshall Islands": true,
	"Micronesia":       true,
	"Palau":            true,
}
