package lineup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/shared"
	"golang.org/x/net/html"
)

// lineupListClass marks the <ul> holding the artist anchors on a songkick
// festival page.
const lineupListClass = "festival"

const userAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:52.0) Gecko/20100101 Firefox/52.0"

// Lineup is a scraped festival page: the festival's display name and its
// performing artists sorted alphabetically.
type Lineup struct {
	FestivalName string
	ArtistNames  []string
}

// Scraper downloads and parses songkick festival pages.
type Scraper struct {
	client *http.Client
	logger *log.Logger
}

// NewScraper creates a scraper. A nil client falls back to
// [http.DefaultClient].
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{client: client, logger: shared.NewLogger(nil)}
}

// Fetch downloads the festival page at pageURL and returns its lineup.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*Lineup, error) {
	name, err := FestivalName(pageURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: festival page returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	artists, err := ParseArtists(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scraped lineup", "festival", name, "artists", len(artists))

	return &Lineup{FestivalName: name, ArtistNames: artists}, nil
}

// FestivalName derives a display name from a songkick festival URL. The
// segment after "id/" carries a numeric identifier and a hyphenated slug
// ("id/41123551-austin-city-limits-music-festival-2023"); the slug becomes a
// title-cased name.
func FestivalName(pageURL string) (string, error) {
	_, after, found := strings.Cut(pageURL, "id/")
	if !found {
		return "", fmt.Errorf("%w: url %q has no id/ segment", shared.ErrInvalidArgument, pageURL)
	}

	_, slug, found := strings.Cut(after, "-")
	if !found || slug == "" {
		return "", fmt.Errorf("%w: url %q has no festival slug", shared.ErrInvalidArgument, pageURL)
	}

	return titleCase(strings.ReplaceAll(slug, "-", " ")), nil
}

// ParseArtists reads an HTML document and returns the text of every anchor
// inside the lineup <ul>, sorted alphabetically. A page without a lineup list
// yields [shared.ErrLineupNotFound].
func ParseArtists(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLineupNotFound, err)
	}

	list := findLineupList(doc)
	if list == nil {
		return nil, fmt.Errorf("%w: no lineup list in page", shared.ErrLineupNotFound)
	}

	var names []string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if name := strings.TrimSpace(nodeText(n)); name != "" {
				names = append(names, name)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(list)

	sort.Strings(names)
	return names, nil
}

// findLineupList walks the document for the first <ul> whose class list
// contains the lineup marker.
func findLineupList(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "ul" {
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, class := range strings.Fields(attr.Val) {
				if class == lineupListClass {
					return n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findLineupList(c); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates the text content of a node's subtree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// titleCase uppercases the first letter of each whitespace-delimited word and
// lowercases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
