package engine

// DateTime is the engine's date-time value.
// Fields are meaningful only when the matching Has* flag is set.
type DateTime struct {
	Year        int32
	Month       int32
	Day         int32
	Hour        int32
	Minute      int32
	Second      int32
	HasDate     bool
	HasTime     bool
	HasTimeZone bool
	TZSign      int8
	TZHour      int32
	TZMinute    int32
	Nanosecond  int32
}

// Time zone signs.
const (
	TZWest int8 = -1
	TZUTC  int8 = 0
	TZEast int8 = 1
)
