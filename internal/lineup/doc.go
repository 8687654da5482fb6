// Package lineup fetches festival lineups from songkick event pages. A
// [Scraper] downloads the page, pulls every artist anchor out of the lineup
// list, and derives a display name for the festival from the URL slug.
package lineup
