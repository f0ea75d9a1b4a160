package tools

import (
	"fmt"
	"time"
)

// jst avoids a tzdata dependency; JST has no daylight saving.
var jst = time.FixedZone("JST", 9*60*60)

// weekdayNames is indexed by time.Weekday (Sunday first).
var weekdayNames = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// GetCurrentDatetime renders the current date and time in JST with the
// Japanese weekday name and ISO week number.
func (t *Toolbox) GetCurrentDatetime() string {
	now := t.Now().In(jst)
	_, isoWeek := now.ISOWeek()

	return fmt.Sprintf(
		"現在の日時: %d年%d月%d日（%s）%02d:%02d JST\n第%d週",
		now.Year(), int(now.Month()), now.Day(),
		weekdayNames[now.Weekday()],
		now.Hour(), now.Minute(),
		isoWeek,
	)
}
