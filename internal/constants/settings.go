package constants

const (
	SettingTimezone             = "timezone"
	SettingReportHour           = "report_hour"
	SettingLastReportDate       = "last_report_date"
	SettingNotificationsEnabled = "notifications_enabled"

	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultReportHour           = 20
	DefaultNotificationsEnabled = true
)
