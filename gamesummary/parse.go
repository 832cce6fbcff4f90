package gamesummary

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/domino14/aoe4analyze/aoe4world"
)

// ErrInvalidSummary wraps every validation failure.
var ErrInvalidSummary = errors.New("invalid game summary")

//go:embed summary.schema.json
var schemaJSON []byte

var schema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic(err)
	}
	return s
}

var arrayIndex = regexp.MustCompile(`\.(\d+)`)

// fieldPath turns "players.0.apm" into "players[0].apm".
func fieldPath(f string) string {
	return arrayIndex.ReplaceAllString(f, "[$1]")
}

// Parse validates and decodes a summary document.
func Parse(b []byte) (*Summary, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSummary, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(e.Field()), e.Description()))
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSummary, strings.Join(msgs, "; "))
	}
	s := &Summary{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSummary, err)
	}
	return s, nil
}

// LoadFile parses a summary saved to disk.
func LoadFile(path string) (*Summary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Fetcher downloads summaries from aoe4world.
type Fetcher struct {
	Client *aoe4world.Client
	// URLTemplate takes the profile slug and the game id.
	URLTemplate string
}

// SummaryURL is the address of one game's summary.
func (f *Fetcher) SummaryURL(profile string, gameID int64) string {
	return fmt.Sprintf(f.URLTemplate, url.PathEscape(profile), gameID)
}

// Fetch downloads and parses a summary. sig is the signature aoe4world
// requires for games that are not public; it may be empty.
func (f *Fetcher) Fetch(ctx context.Context, profile string, gameID int64, sig string) (*Summary, error) {
	u := f.SummaryURL(profile, gameID)
	q := url.Values{"camelize": {"true"}}
	if sig != "" {
		q.Set("sig", sig)
	}
	log.Debug().Str("url", u).Bool("signed", sig != "").Msg("fetching-summary")
	b, err := f.Client.Get(ctx, u, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	return s, nil
}
