package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	ReportHour           int    `json:"report_hour"`           // hour of day (0-23) after which the daily report is sent
	LastReportDate       string `json:"last_report_date"`      // YYYY-MM-DD of the last automatic report
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reports may be pushed to the tray notifier
}
