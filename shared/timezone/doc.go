// Package timezone pins every wall-clock decision to the hotel's location.
//
// Stay dates, invoice days, report windows and chart labels are all computed in the
// location named by APP_TIMEZONE (an IANA name such as "Europe/Lisbon"), falling back to
// UTC when unset or unknown. The location is resolved once when the package loads.
//
//	checkIn, err := timezone.Parse(constant.DayFormat, "2026-03-14")
//	nights := timezone.CeilDays(checkIn, checkOut)
//	window := timezone.StartOfMonth(timezone.Now())
package timezone
