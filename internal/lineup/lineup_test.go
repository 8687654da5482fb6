package lineup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/setlist/internal/shared"
)

const festivalPage = `<!DOCTYPE html>
<html><body>
<ul class="other"><li><a href="/venues/1">Not An Artist</a></li></ul>
<ul class="festival lineup">
  <li><a href="/artists/29315-foo-fighters">Foo Fighters</a></li>
  <li><a href="/artists/1-odesza">ODESZA</a></li>
  <li><a href="/artists/2-hozier">Hozier</a></li>
  <li><a href="/artists/3-m83"><span>M83</span></a></li>
</ul>
</body></html>`

func TestFestivalName(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "acl",
			url:  "https://www.songkick.com/festivals/129-austin-city-limits-music/id/41123551-austin-city-limits-music-festival-2023",
			want: "Austin City Limits Music Festival 2023",
		},
		{
			name: "edc",
			url:  "https://www.songkick.com/festivals/562824-edc-orlando/id/40754508-edc-orlando-2023",
			want: "Edc Orlando 2023",
		},
		{
			name:    "missing id segment",
			url:     "https://www.songkick.com/festivals/129-acl",
			wantErr: true,
		},
		{
			name:    "missing slug",
			url:     "https://www.songkick.com/festivals/129-acl/id/41123551",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FestivalName(tt.url)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FestivalName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArtists(t *testing.T) {
	t.Run("sorted anchor text", func(t *testing.T) {
		got, err := ParseArtists(strings.NewReader(festivalPage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"Foo Fighters", "Hozier", "M83", "ODESZA"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("artists = %v, want %v", got, want)
		}
	})

	t.Run("no lineup list", func(t *testing.T) {
		_, err := ParseArtists(strings.NewReader("<html><body><p>nope</p></body></html>"))
		if !errors.Is(err, shared.ErrLineupNotFound) {
			t.Errorf("err = %v, want ErrLineupNotFound", err)
		}
	})
}

func TestScraperFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") == "" {
				t.Error("expected a User-Agent header")
			}
			w.Write([]byte(festivalPage))
		}))
		defer srv.Close()

		scraper := NewScraper(srv.Client())
		got, err := scraper.Fetch(context.Background(), srv.URL+"/festivals/1-acl/id/99-test-fest-2026")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got.FestivalName != "Test Fest 2026" {
			t.Errorf("festival = %q", got.FestivalName)
		}
		if len(got.ArtistNames) != 4 {
			t.Errorf("artists = %v", got.ArtistNames)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		scraper := NewScraper(srv.Client())
		_, err := scraper.Fetch(context.Background(), srv.URL+"/festivals/1-acl/id/99-test-fest-2026")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("err = %v, want ErrAPIRequest", err)
		}
	})
}
