package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "tok")
	t.Setenv("NOTION_DATABASE_ID", "db123")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "名前", cfg.Notion.TitleProperty)
	assert.Equal(t, "予定日", cfg.Notion.DateProperty)
	assert.Equal(t, 10, cfg.Room.StartHour)
	assert.Equal(t, 23, cfg.Room.EndHour)
	assert.Equal(t, 30, cfg.Room.SlotMinutes)
	assert.Equal(t, 7, cfg.Room.WindowDays)
	assert.True(t, cfg.Room.WeekendsClosed)
	assert.Contains(t, cfg.Room.Holidays, "2025-07-21")

	_, offset := datetime(2025, 6, 2, 0, 0).Zone()
	_, cfgOffset := datetime(2025, 6, 2, 0, 0).In(cfg.Room.Location).Zone()
	assert.Equal(t, offset, cfgOffset)
}

func TestFromEnv_RequiresCredentials(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ValidatesRoomParameters(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "tok")
	t.Setenv("NOTION_DATABASE_ID", "db123")

	t.Setenv("ROOM_SLOT_MINUTES", "45")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("ROOM_SLOT_MINUTES", "60")
	t.Setenv("ROOM_WINDOW_DAYS", "6")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("ROOM_WINDOW_DAYS", "5")
	t.Setenv("ROOM_HOLIDAYS", "2025-01-01,not-a-date")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("ROOM_HOLIDAYS", "2025-01-01, 2025-02-11")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Room.SlotMinutes)
	assert.Equal(t, 5, cfg.Room.WindowDays)
	assert.Len(t, cfg.Room.Holidays, 2)
}
