package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raitonoberu/ytsearch"
)

// ErrEmptyQuery is returned for blank search queries.
var ErrEmptyQuery = errors.New("empty search query")

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

type SearchItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Duration     string `json:"duration"`
	IsLive       bool   `json:"isLive"`
	Thumbnail    string `json:"thumbnail"`
}

type SearchResult struct {
	Query string       `json:"query"`
	Items []SearchItem `json:"items"`
}

type searchFunc func(ctx context.Context, query string) ([]SearchItem, error)

// Searcher lists videos matching a free text query.
type Searcher struct {
	search searchFunc
}

func NewSearcher() *Searcher {
	return &Searcher{search: youtubeSearch}
}

// Search returns at most limit items. Out of range limits fall back to DefaultSearchLimit.
func (s *Searcher) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if limit <= 0 || limit > MaxSearchLimit {
		limit = DefaultSearchLimit
	}

	items, err := s.search(ctx, query)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	return SearchResult{Query: query, Items: items}, nil
}

func youtubeSearch(ctx context.Context, query string) ([]SearchItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := ytsearch.VideoSearch(query).Next()
	if err != nil {
		return nil, err
	}

	items := make([]SearchItem, 0, len(results.Videos))
	for _, v := range results.Videos {
		var thumbnail string
		if len(v.Thumbnails) > 0 {
			thumbnail = v.Thumbnails[0].URL
		}

		items = append(items, SearchItem{
			ID:           v.ID,
			Title:        v.Title,
			ChannelTitle: v.Channel.Title,
			Duration:     FormatDuration(v.Duration),
			IsLive:       v.Duration == 0,
			Thumbnail:    thumbnail,
		})
	}

	return items, nil
}

// FormatDuration renders seconds as m:ss or h:mm:ss. Zero means a live stream.
func FormatDuration(seconds int) string {
	if seconds == 0 {
		return "LIVE"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
