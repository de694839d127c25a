package settings

import "time"

// Settings is the singleton set of site visibility toggles.
type Settings struct {
	ShowTeam     bool      `json:"showTeam"`
	ShowNews     bool      `json:"showNews"`
	ShowServices bool      `json:"showServices"`
	ShowBlog     bool      `json:"showBlog"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Defaults returns the settings used before any admin has saved a row.
func Defaults() Settings {
	return Settings{ShowTeam: true, ShowNews: true, ShowServices: true, ShowBlog: true}
}
