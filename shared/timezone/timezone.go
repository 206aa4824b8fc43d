// Package timezone keeps every timestamp the service writes or renders in the
// zone named by APP_TIMEZONE, which the entrypoints pass to Load at startup.
// Names must come from the IANA database ("UTC", "Asia/Jakarta",
// "Europe/London"); anything else falls back to UTC.
package timezone

import (
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

// Load switches the application zone. An empty or unknown name selects UTC.
func Load(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		appLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone, truncated to
// microseconds so it survives a round trip through either store.
func Now() time.Time {
	return time.Now().In(appLocation).Truncate(time.Microsecond)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
