// Package rss renders published news entries as an RSS 2.0 feed.
package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
)

// FeedSize is the number of entries included in the feed.
const FeedSize = 20

// Channel describes the feed itself.
type Channel struct {
	Title       string
	Description string
	// SiteURL is the public storefront; item links point at SiteURL/news/<slug>.
	SiteURL string
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Author      string   `xml:"author,omitempty"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
}

// Write encodes entries (already in public order) as an RSS document.
// lastBuildDate is the newest publication time and is omitted for an empty feed.
func Write(w io.Writer, ch Channel, entries []*models.NewsEntry) error {
	site := strings.TrimRight(ch.SiteURL, "/")
	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:       ch.Title,
			Link:        site + "/news",
			Description: ch.Description,
			Language:    "en",
			Items:       make([]rssItem, 0, len(entries)),
		},
	}

	var newest time.Time
	for _, e := range entries {
		link := site + "/news/" + url.PathEscape(e.Slug)
		item := rssItem{
			Title:       e.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: false, Value: e.ID},
			Description: e.Excerpt,
			Categories:  e.Tags,
		}
		if e.PublishedAt != nil {
			item.PubDate = e.PublishedAt.UTC().Format(time.RFC1123Z)
			if e.PublishedAt.After(newest) {
				newest = *e.PublishedAt
			}
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}
	if !newest.IsZero() {
		doc.Channel.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode rss: %w", err)
	}
	return enc.Close()
}
