package types

// Keys of the persistent store. One aggregate per key, last-write-wins.
const (
	KeySettings   = "config"
	KeySession    = "workday_session"
	KeyActiveTrip = "active_trip"
	KeyTripLog    = "trip_log"
)

// Notice identifiers pushed over the websocket stream.
const (
	NoticePendingClosure = "pending_closure"
	NoticeReportReady    = "end_of_day_report"
	NoticeReportFailed   = "end_of_day_report_failed"
)
