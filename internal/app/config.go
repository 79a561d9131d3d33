package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultHolidays are the Japanese national holidays for 2025, matching the
// calendar the store database was seeded for. Override with ROOM_HOLIDAYS.
var defaultHolidays = []string{
	"2025-01-01", "2025-01-13", "2025-02-11", "2025-02-23",
	"2025-03-20", "2025-04-29", "2025-05-03", "2025-05-04",
	"2025-05-05", "2025-07-21", "2025-08-11", "2025-09-15",
	"2025-09-23", "2025-10-13", "2025-11-03", "2025-11-23",
}

// NotionConfig holds everything needed to reach the Notion store.
type NotionConfig struct {
	Token         string
	DatabaseID    string
	BaseURL       string
	TitleProperty string
	DateProperty  string

	// Notion OAuth (optional, for public-integration workspace connect)
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// RoomConfig holds the room's booking parameters: operating hours, slot
// granularity, window length and which days are closed.
type RoomConfig struct {
	Title          string
	StartHour      int
	EndHour        int
	SlotMinutes    int
	WindowDays     int
	WeekendsClosed bool
	Holidays       map[string]struct{}
	Location       *time.Location
}

type Config struct {
	Port         string
	StaticTokens []string
	JWTSecret    string
	Notion       NotionConfig
	Room         RoomConfig
}

// FromEnv reads process configuration. Credentials are never defaulted;
// business parameters default to the meeting-room-A setup.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_HMAC_SECRET")),
		Notion: NotionConfig{
			Token:         os.Getenv("NOTION_TOKEN"),
			DatabaseID:    os.Getenv("NOTION_DATABASE_ID"),
			BaseURL:       getenv("NOTION_BASE_URL", "https://api.notion.com"),
			TitleProperty: getenv("NOTION_TITLE_PROPERTY", "名前"),
			DateProperty:  getenv("NOTION_DATE_PROPERTY", "予定日"),
			ClientID:      os.Getenv("NOTION_CLIENT_ID"),
			ClientSecret:  os.Getenv("NOTION_CLIENT_SECRET"),
			RedirectURL:   os.Getenv("NOTION_REDIRECT_URL"),
		},
	}

	if raw := strings.TrimSpace(os.Getenv("STATIC_TOKENS")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.StaticTokens = append(cfg.StaticTokens, t)
			}
		}
	}

	if cfg.Notion.DatabaseID == "" {
		return Config{}, fmt.Errorf("NOTION_DATABASE_ID required")
	}
	if cfg.Notion.Token == "" {
		return Config{}, fmt.Errorf("NOTION_TOKEN required")
	}

	room, err := roomFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Room = room
	return cfg, nil
}

func roomFromEnv() (RoomConfig, error) {
	room := RoomConfig{
		Title:          getenv("ROOM_TITLE", "会議室A"),
		WeekendsClosed: getenv("ROOM_WEEKENDS_CLOSED", "true") == "true",
		Location:       time.FixedZone("JST", 9*60*60),
	}

	var err error
	if room.StartHour, err = getint("ROOM_START_HOUR", 10); err != nil {
		return RoomConfig{}, err
	}
	if room.EndHour, err = getint("ROOM_END_HOUR", 23); err != nil {
		return RoomConfig{}, err
	}
	if room.SlotMinutes, err = getint("ROOM_SLOT_MINUTES", 30); err != nil {
		return RoomConfig{}, err
	}
	if room.WindowDays, err = getint("ROOM_WINDOW_DAYS", 7); err != nil {
		return RoomConfig{}, err
	}

	if room.StartHour < 0 || room.EndHour > 24 || room.StartHour >= room.EndHour {
		return RoomConfig{}, fmt.Errorf("invalid operating hours %d-%d", room.StartHour, room.EndHour)
	}
	if room.SlotMinutes != 30 && room.SlotMinutes != 60 {
		return RoomConfig{}, fmt.Errorf("ROOM_SLOT_MINUTES must be 30 or 60")
	}
	if room.WindowDays != 5 && room.WindowDays != 7 {
		return RoomConfig{}, fmt.Errorf("ROOM_WINDOW_DAYS must be 5 or 7")
	}

	holidays := defaultHolidays
	if raw := strings.TrimSpace(os.Getenv("ROOM_HOLIDAYS")); raw != "" {
		holidays = strings.Split(raw, ",")
	}
	room.Holidays = make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, h); err != nil {
			return RoomConfig{}, fmt.Errorf("invalid holiday date %q: %w", h, err)
		}
		room.Holidays[h] = struct{}{}
	}
	return room, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, v)
	}
	return n, nil
}
