package constants

import "time"

const (
	AppName            = "lifelog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lifelog/lifelog.db"
	Version            = "v0.3.0"

	// DateFormat is the calendar day format used for every record (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format accepted by month-scoped commands (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is used for created/updated columns
	TimestampFormat = time.RFC3339

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifelog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "lifelog-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.lifelog"

	// EnvDBConnection names the env var holding a PostgreSQL connection string
	EnvDBConnection = "LIFELOG_DB_CONNECTION"
)

// RecordKind names a table addressable by the data management commands.
type RecordKind string

const (
	KindDopamine          RecordKind = "dopamine"
	KindWorkout           RecordKind = "workout"
	KindWorkoutTemplate   RecordKind = "template"
	KindWorkoutExercise   RecordKind = "exercise"
	KindHygieneHabit      RecordKind = "habit"
	KindHygieneCompletion RecordKind = "completion"
	KindMood              RecordKind = "mood"
)

// RecordKinds lists every deletable kind in display order.
var RecordKinds = []RecordKind{
	KindDopamine,
	KindWorkout,
	KindWorkoutTemplate,
	KindWorkoutExercise,
	KindHygieneHabit,
	KindHygieneCompletion,
	KindMood,
}
