package models

import "time"

type NewsCategory string

const (
	NewsEvents        NewsCategory = "events"
	NewsAnnouncements NewsCategory = "announcements"
	NewsAchievements  NewsCategory = "achievements"
	NewsGeneral       NewsCategory = "general"
)

func (nc NewsCategory) Valid() bool {
	switch nc {
	case NewsEvents, NewsAnnouncements, NewsAchievements, NewsGeneral:
		return true
	}
	return false
}

// NewsArticle is a school newspaper entry, persisted in the
// "school_news_articles" collection.
type NewsArticle struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Content  string       `json:"content"`
	Author   string       `json:"author"`
	Date     time.Time    `json:"date"`
	ImageURL *string      `json:"image_url,omitempty"`
	Category NewsCategory `json:"category"`
}
