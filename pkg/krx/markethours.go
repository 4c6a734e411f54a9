package krx

import "time"

// KST is the exchange timezone. KRX has no daylight saving.
var KST = time.FixedZone("KST", 9*60*60)

// IsMarketOpen reports whether the KRX regular session is trading at t.
// Regular session: weekdays 09:00-15:30 KST. Exchange holidays are not
// checked; a holiday simply yields empty data from the quote API.
func IsMarketOpen(t time.Time) bool {
	t = t.In(KST)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	mins := t.Hour()*60 + t.Minute()
	return mins >= 9*60 && mins <= 15*60+30
}
