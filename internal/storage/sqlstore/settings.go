package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.query(s.sb.Select("key", "value").From("settings"))
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	for key, value := range models.SettingsToMap(settings) {
		_, err := s.exec(s.sb.Insert("settings").
			Columns("key", "value").
			Values(key, value).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value"))
		if err != nil {
			return err
		}
	}
	return nil
}

// SettingExists reports whether a settings key has been written
func (s *Store) SettingExists(key string) (bool, error) {
	row, err := s.queryRow(s.sb.Select("count(*)").From("settings").Where(sq.Eq{"key": key}))
	if err != nil {
		return false, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureDefaultSettings writes defaults for any setting not yet stored,
// leaving values the user has changed alone.
func (s *Store) EnsureDefaultSettings() error {
	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	stored, err := s.SettingExists(constants.SettingNotificationsEnabled)
	if err != nil {
		return err
	}
	if !stored {
		settings.NotificationsEnabled = constants.DefaultNotificationsEnabled
	}
	models.ApplyDefaultSettings(&settings)
	return s.SaveSettings(settings)
}
