package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Setting keys.
const (
	SettingGridSize = "grid_size"
	SettingLevel    = "level"
	SettingPlayer   = "player_name"
)

// Setting returns the value stored under key.
func (s *Store) Setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// IntSetting returns the integer stored under key, or def when the key is
// missing or not a number.
func (s *Store) IntSetting(key string, def int) (int, error) {
	v, ok, err := s.Setting(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// LastLevel returns the grid size and level number played last.
func (s *Store) LastLevel() (size, level int, ok bool, err error) {
	size, err = s.IntSetting(SettingGridSize, 0)
	if err != nil {
		return 0, 0, false, err
	}
	level, err = s.IntSetting(SettingLevel, 0)
	if err != nil {
		return 0, 0, false, err
	}
	if size <= 0 || level <= 0 {
		return 0, 0, false, nil
	}
	return size, level, true, nil
}

// SetLastLevel remembers the level being played so the next run continues it.
func (s *Store) SetLastLevel(size, level int) error {
	if err := s.SetSetting(SettingGridSize, strconv.Itoa(size)); err != nil {
		return err
	}
	return s.SetSetting(SettingLevel, strconv.Itoa(level))
}
