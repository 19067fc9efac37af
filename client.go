// Package cinerank embeds the recommendation engine in-process: load a
// catalog file, build the tf-idf index once and query it without
// running the HTTP server.
package cinerank

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/catalog"
	"github.com/kino-labs/cinerank/internal/db"
	dbRedis "github.com/kino-labs/cinerank/internal/db/redis"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/domain/title"
	rankrepo "github.com/kino-labs/cinerank/internal/repository/rank"
	"github.com/kino-labs/cinerank/internal/repository/reccache"
	"github.com/kino-labs/cinerank/internal/text"
	"github.com/kino-labs/cinerank/internal/tfidf"
	libraryuc "github.com/kino-labs/cinerank/internal/usecase/library"
	recommenduc "github.com/kino-labs/cinerank/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the cinerank SDK entry point.
type Client struct {
	store        *catalog.Store
	kv           db.Store
	limits       rank.Limits
	recommendSvc *recommenduc.Service
	librarySvc   *libraryuc.Service
}

// New loads the catalog, fits the index and wires the services.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		catalogPath: "movie_data.json",
		maxFeatures: 5000,
		analyzer:    text.AnalyzerLemma,
		cacheTTL:    5 * time.Minute,
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	store, err := catalog.Load(cfg.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("cinerank: load catalog: %w", err)
	}

	normalizer, err := text.NewNormalizer(cfg.analyzer)
	if err != nil {
		return nil, fmt.Errorf("cinerank: %w", err)
	}

	index, err := rankrepo.NewIndex(store, normalizer, tfidf.New(cfg.maxFeatures))
	if err != nil {
		return nil, fmt.Errorf("cinerank: build index: %w", err)
	}

	c := &Client{
		store:        store,
		limits:       cfg.limits,
		recommendSvc: recommenduc.New(index),
		librarySvc:   libraryuc.New(store),
	}

	if len(cfg.cacheAddrs) > 0 {
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("cinerank: create cache store: %w", err)
		}
		if err := kv.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			kv.Close()
			return nil, fmt.Errorf("cinerank: cache not ready: %w", err)
		}
		c.kv = kv
		c.recommendSvc.WithCache(reccache.New(kv, store, cfg.cacheTTL, nil, cfg.logger))
	}

	return c, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.kv != nil {
		c.kv.Close()
	}
}

// Recommend ranks the catalog against a free-text query. An empty
// Results slice means no match; it is never an error.
func (c *Client) Recommend(ctx context.Context, query string, opts ...QueryOption) (Recommendation, error) {
	qc := &queryConfig{}
	for _, o := range opts {
		o(qc)
	}

	crit, err := rank.NewCriteria(
		qc.filters.Genre, qc.filters.Year, qc.filters.YearFrom, qc.filters.YearTo,
		qc.filters.Languages, title.Type(qc.filters.MediaType),
	)
	if err != nil {
		return Recommendation{}, fmt.Errorf("cinerank: %w", err)
	}

	req, err := rank.NewRequest(query, qc.topK, crit, c.limits)
	if err != nil {
		return Recommendation{}, fmt.Errorf("cinerank: %w", err)
	}

	outcome, err := c.recommendSvc.Recommend(ctx, &req)
	if err != nil {
		return Recommendation{}, fmt.Errorf("cinerank: %w", err)
	}

	rec := Recommendation{EnhancedQuery: outcome.EnhancedQuery}
	for _, r := range outcome.Results {
		t := r.Title()
		rec.Results = append(rec.Results, Result{
			ID:          t.ID,
			Title:       t.Name,
			Overview:    t.Overview,
			PosterPath:  t.PosterPath,
			ReleaseDate: t.ReleaseDate,
			MediaType:   string(t.MediaType),
			Score:       r.Score(),
		})
	}
	return rec, nil
}

// Title returns full catalog metadata for one title.
func (c *Client) Title(id int) (TitleInfo, error) {
	t, err := c.librarySvc.Title(id)
	if err != nil {
		return TitleInfo{}, fmt.Errorf("cinerank: %w", err)
	}
	return TitleInfo{
		ID:            t.ID,
		Title:         t.Name,
		OriginalTitle: t.OriginalName,
		Overview:      t.Overview,
		PosterPath:    t.PosterPath,
		ReleaseDate:   t.ReleaseDate,
		Genres:        t.Genres,
		Language:      t.Language,
		MediaType:     string(t.MediaType),
		Director:      t.Director,
		Cast:          t.Cast,
		Keywords:      t.Keywords,
	}, nil
}

// FilterValues enumerates the distinct values usable in Filters.
func (c *Client) FilterValues() FilterSet {
	fv := c.librarySvc.FilterValues()
	fs := FilterSet{Genres: fv.Genres, Years: fv.Years}
	for _, l := range fv.Languages {
		fs.Languages = append(fs.Languages, Language{Code: l.Code, Name: l.Name})
	}
	for _, mt := range fv.MediaTypes {
		fs.MediaTypes = append(fs.MediaTypes, string(mt))
	}
	return fs
}

// Stats summarizes the catalog composition.
func (c *Client) Stats() Stats {
	st := c.librarySvc.Stats()
	out := Stats{
		Total:            st.Total,
		Movies:           st.Movies,
		Series:           st.Series,
		Hollywood:        st.Hollywood,
		Bollywood:        st.Bollywood,
		SouthIndian:      st.SouthIndian,
		YearDistribution: st.YearDistribution,
	}
	for _, g := range st.TopGenres {
		out.TopGenres = append(out.TopGenres, GenreCount{Genre: g.Genre, Count: g.Count})
	}
	return out
}

// Len returns the number of catalog titles.
func (c *Client) Len() int { return c.store.Len() }

// Result is one ranked hit.
type Result struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	MediaType   string
	Score       float64
}

// Recommendation is the outcome of one query.
type Recommendation struct {
	EnhancedQuery string
	Results       []Result
}

// Filters narrows results by catalog metadata.
type Filters struct {
	Genre     string
	Year      int
	YearFrom  int
	YearTo    int
	Languages []string
	MediaType string
}

// Language pairs a catalog language code with its display name.
type Language struct {
	Code string
	Name string
}

// FilterSet enumerates the distinct filterable values in the catalog.
type FilterSet struct {
	Languages  []Language
	Genres     []string
	Years      []int
	MediaTypes []string
}

// GenreCount is one genre bucket in the stats breakdown.
type GenreCount struct {
	Genre string
	Count int
}

// Stats summarizes the catalog composition.
type Stats struct {
	Total            int
	Movies           int
	Series           int
	Hollywood        int
	Bollywood        int
	SouthIndian      int
	TopGenres        []GenreCount
	YearDistribution map[int]int
}

// TitleInfo is full catalog metadata for one title.
type TitleInfo struct {
	ID            int
	Title         string
	OriginalTitle string
	Overview      string
	PosterPath    string
	ReleaseDate   string
	Genres        []string
	Language      string
	MediaType     string
	Director      string
	Cast          []string
	Keywords      []string
}
