package model

// Talk is one recorded presentation in the catalog.
//
// The JSON names follow the dataset the catalog is loaded from (snake_case),
// so a record read back from the API looks exactly like the seed entry.
type Talk struct {
	TalkID        int64  `json:"talk_id"        db:"talk_id"`
	Title         string `json:"title"          db:"title"`
	Speaker       string `json:"speaker"        db:"speaker"`
	RecordedDate  string `json:"recorded_date"  db:"recorded_date"`
	PublishedDate string `json:"published_date" db:"published_date"`
	Event         string `json:"event"          db:"event"`
	Duration      int64  `json:"duration"       db:"duration"` // seconds
	Views         int64  `json:"views"          db:"views"`
	Likes         int64  `json:"likes"          db:"likes"`
}
