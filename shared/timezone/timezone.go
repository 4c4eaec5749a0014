package timezone

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/shared/constant"
)

const defaultZone = "UTC"

var appLocation = time.UTC

func init() {
	appLocation = loadLocation(config.Get().App.Timezone)
}

// loadLocation resolves an IANA zone name such as "Europe/Lisbon". Empty or unknown names
// resolve to UTC.
func loadLocation(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("no hotel timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown hotel timezone, using " + defaultZone)

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("hotel timezone loaded")

	return loc
}

// Now is the current wall clock at the hotel.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value as hotel local time when layout carries no zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay truncates t to local midnight in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// StartOfMonth returns local midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	local := ToAppTime(t)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
}

// CeilDays is the number of whole days from `from` to `to`, rounding any partial day up.
// Negative spans round toward zero the same way, so a past date yields 0 or less.
func CeilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / constant.HoursPerDay))
}
