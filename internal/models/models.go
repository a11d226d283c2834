package models

import "time"

// Settings keys as persisted in settings.json
const (
	KeyEventDate     = "event_date"
	KeyEventTime     = "event_time"
	KeyEventLocation = "event_location"
)

// EventSettings holds the metadata of the single upcoming event
type EventSettings struct {
	Date     string // day.month, e.g. "18.02"
	Time     string // hour:minute, e.g. "20:00"
	Location string
}

// DefaultEventSettings are used until the first load
func DefaultEventSettings() EventSettings {
	return EventSettings{
		Date:     "18.02",
		Time:     "20:00",
		Location: "Club XYZ",
	}
}

// ToMap converts settings to the persisted key-value form
func (s EventSettings) ToMap() map[string]string {
	return map[string]string{
		KeyEventDate:     s.Date,
		KeyEventTime:     s.Time,
		KeyEventLocation: s.Location,
	}
}

// Merge returns a copy of s overridden by every non-empty known key in values
func (s EventSettings) Merge(values map[string]string) EventSettings {
	if v, ok := values[KeyEventDate]; ok && v != "" {
		s.Date = v
	}
	if v, ok := values[KeyEventTime]; ok && v != "" {
		s.Time = v
	}
	if v, ok := values[KeyEventLocation]; ok && v != "" {
		s.Location = v
	}
	return s
}

// Registration represents one completed registration form
type Registration struct {
	ID           string
	ChatID       int64
	Name         string
	Phone        string // +380XXXXXXXXX
	Username     string // starts with @
	Source       string
	RegisteredAt time.Time
}

// Row returns the spreadsheet row for the registration
func (r Registration) Row() []interface{} {
	ts := ""
	if !r.RegisteredAt.IsZero() {
		ts = r.RegisteredAt.Format("2006-01-02 15:04:05")
	}
	return []interface{}{r.Name, r.Phone, r.Username, r.Source, ts}
}

// RegistrationHeader is the first row of every event worksheet
var RegistrationHeader = []interface{}{"Ім'я", "Телефон", "Telegram", "Джерело", "Час реєстрації"}
