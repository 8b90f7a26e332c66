package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aniverse/catalog"
	"aniverse/config"
	"aniverse/logger"
	"aniverse/models"
	"aniverse/repository"
	"aniverse/source"
)

// seedStore copies the static document into the relational store. Records
// already present are left alone, so seeding twice is harmless.
func seedStore(ctx context.Context, p source.Provider, cfg *config.Config) error {
	rel, ok := p.(*source.RelationalSource)
	if !ok {
		return errors.New("seeding needs a relational store: set CATALOG_STORE_URL and CATALOG_STORE_KEY")
	}

	doc, err := source.LoadDocument(cfg.Static.Document)
	if err != nil {
		return err
	}

	stats, err := importDocument(ctx, rel, doc, catalog.NewClassifier(cfg.Static.SeriesIDs))
	if err != nil {
		return err
	}

	l := logger.New("seed")
	l.Info().
		Int("series", stats.series).
		Int("movies", stats.movies).
		Int("episodes", stats.episodes).
		Int("skipped", stats.skipped).
		Msg("Static document imported")
	return nil
}

type seedStats struct {
	series, movies, episodes, skipped int
}

func (s *seedStats) add(o seedStats) {
	s.series += o.series
	s.movies += o.movies
	s.episodes += o.episodes
	s.skipped += o.skipped
}

// importDocument writes each entry with its episodes in one transaction. A
// failed entry leaves nothing behind, so a later run imports it in full.
func importDocument(ctx context.Context, rel *source.RelationalSource, doc models.StaticDocument, classifier *catalog.Classifier) (seedStats, error) {
	var stats seedStats

	db := rel.DB()
	for _, entry := range doc.Series {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return stats, fmt.Errorf("failed to begin import of %q: %w", entry.Slug, err)
		}

		entryStats, err := importEntry(ctx, tx, entry, classifier.Classify(entry.ID))
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return stats, errors.Join(err, fmt.Errorf("failed to roll back %q: %w", entry.Slug, rbErr))
			}
			return stats, err
		}

		if err := tx.Commit(); err != nil {
			return stats, fmt.Errorf("failed to commit %q: %w", entry.Slug, err)
		}
		stats.add(entryStats)
	}

	return stats, nil
}

func importEntry(ctx context.Context, q repository.Querier, entry models.StaticEntry, kind models.EntryType) (seedStats, error) {
	var stats seedStats

	base := models.SeriesRecord{
		Slug:        entry.Slug,
		Title:       entry.Title,
		Poster:      entry.Poster,
		BannerImage: entry.BannerImage,
		Genres:      entry.Genres,
		Description: entry.Synopsis,
		Status:      entry.Status,
		Year:        entry.Year,
	}

	if kind == models.EntryTypeMovie {
		movieRepo := repository.NewMovieRepository(q)
		if _, err := movieRepo.GetBySlug(ctx, entry.Slug); err == nil {
			stats.skipped++
			return stats, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return stats, err
		}

		movie := &models.MovieRecord{
			SeriesRecord: base,
			Runtime:      entry.Runtime,
			Languages:    entry.Languages,
			Servers:      entry.Servers,
		}
		if err := movieRepo.Create(ctx, movie); err != nil {
			return stats, fmt.Errorf("movie %q: %w", entry.Slug, err)
		}
		stats.movies++
		return stats, nil
	}

	seriesRepo := repository.NewSeriesRepository(q)
	if _, err := seriesRepo.GetBySlug(ctx, entry.Slug); err == nil {
		stats.skipped++
		return stats, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return stats, err
	}

	if err := seriesRepo.Create(ctx, &base); err != nil {
		return stats, fmt.Errorf("series %q: %w", entry.Slug, err)
	}
	stats.series++

	episodeRepo := repository.NewEpisodeRepository(q)
	for _, ep := range entry.Episodes {
		record := &models.EpisodeRecord{
			SeriesSlug: entry.Slug,
			Season:     1,
			Episode:    ep.Number,
			Title:      ep.Title,
			Thumbnail:  ep.Thumbnail,
			Servers:    ep.Servers,
		}
		if err := episodeRepo.Create(ctx, record, releaseTime(ep.ReleaseDate)); err != nil {
			return stats, fmt.Errorf("series %q episode %d: %w", entry.Slug, ep.Number, err)
		}
		stats.episodes++
	}

	return stats, nil
}

// releaseTime parses a document release date. Unparseable dates yield the
// zero time, which the repository stores as the import time.
func releaseTime(date string) time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}
	}
	return t
}
