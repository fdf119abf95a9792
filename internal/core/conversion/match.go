package conversion

import (
	"fmt"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
)

type matchState int

const (
	notFound matchState = iota
	found
	ambiguous
)

// candidate is the result of one matching step: nothing, exactly one record, or an
// ambiguity that must be reported instead of guessed.
type candidate struct {
	state     matchState
	record    domain.QuotationRecord
	direction domain.Direction
	err       error
}

func foundCandidate(rec domain.QuotationRecord, dir domain.Direction) candidate {
	return candidate{state: found, record: rec, direction: dir}
}

func ambiguousCandidate(err error) candidate {
	return candidate{state: ambiguous, err: err}
}

// firstResolved returns the first candidate that is not notFound.
func firstResolved(cs ...candidate) candidate {
	for _, c := range cs {
		if c.state != notFound {
			return c
		}
	}
	return candidate{}
}

// matchPair picks the latest record quoted for exactly pair. Several records sharing the
// latest ValidFrom are duplicates. When eligibility is not restricted to one data source,
// records of the pair coming from several sources are ambiguous regardless of recency.
func matchPair(records []domain.QuotationRecord, pair domain.CurrencyPair, restricted bool, dir domain.Direction) candidate {
	var latest []domain.QuotationRecord
	sources := make(map[domain.DataSource]struct{})

	for _, rec := range records {
		if rec.Pair() != pair {
			continue
		}
		sources[rec.Source()] = struct{}{}
		switch {
		case len(latest) == 0 || rec.ValidFrom.After(latest[0].ValidFrom):
			latest = append(latest[:0], rec)
		case rec.ValidFrom.Equal(latest[0].ValidFrom):
			latest = append(latest, rec)
		}
	}

	switch {
	case len(latest) == 0:
		return candidate{}
	case !restricted && len(sources) > 1:
		return ambiguousCandidate(fmt.Errorf("%w: %s is quoted by %d data sources",
			apperrors.ErrMultipleRecordsFound, pair, len(sources)))
	case len(latest) > 1:
		return ambiguousCandidate(fmt.Errorf("%w: %d records for %s valid from %s",
			apperrors.ErrDuplicateRecord, len(latest), pair, latest[0].ValidFrom.Format("2006-01-02T15:04:05Z07:00")))
	}
	return foundCandidate(latest[0], dir)
}

// matchDirectional resolves pair directly and, when allowed, through the reversed pair.
// Both directions are evaluated so that a direct and an inverted record published by
// different data sources are reported as ambiguous rather than resolved by preference.
func matchDirectional(records []domain.QuotationRecord, pair domain.CurrencyPair, allowInversion, restricted bool) candidate {
	direct := matchPair(records, pair, restricted, domain.Forward)
	if !allowInversion {
		return direct
	}

	inverted := matchPair(records, pair.Reversed(), restricted, domain.Reversed)
	if direct.state == found && inverted.state == found && direct.record.Source() != inverted.record.Source() {
		return ambiguousCandidate(fmt.Errorf("%w: %s offered by %s, %s offered by %s",
			apperrors.ErrMultipleRecordsFound, pair, direct.record.Source(), pair.Reversed(), inverted.record.Source()))
	}
	return firstResolved(direct, inverted)
}
