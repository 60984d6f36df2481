package domain

import "time"

type AnnouncementCategory string

const (
	CategoryNotice      AnnouncementCategory = "notice"
	CategoryEvent       AnnouncementCategory = "event"
	CategoryMaintenance AnnouncementCategory = "maintenance"
)

func (c AnnouncementCategory) Valid() bool {
	switch c {
	case CategoryNotice, CategoryEvent, CategoryMaintenance:
		return true
	}
	return false
}

// Announcement is an operator notice shown to every visitor. Read-only at runtime.
type Announcement struct {
	ID       int64                `json:"id" yaml:"id"`
	Title    string               `json:"title" yaml:"title"`
	Content  string               `json:"content" yaml:"content"`
	Date     time.Time            `json:"date" yaml:"date"`
	Author   string               `json:"author" yaml:"author"`
	Category AnnouncementCategory `json:"category" yaml:"category"`
}
