package service

import (
	"context"
	"errors"
	"strings"

	"DeckBox/internal/decklist"
	"DeckBox/internal/model"
	"DeckBox/internal/repo"

	"go.uber.org/zap"
)

// cardResolver is the slice of the Resolver the importer needs; kept small
// so tests can stand in a double.
type cardResolver interface {
	Resolve(ctx context.Context, ref decklist.ParsedLine) (*model.Card, error)
}

// LineFailure reports one decklist line that could not be imported. Line is
// the user's input verbatim.
type LineFailure struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarises one bulk import.
type ImportResult struct {
	// Added counts decklist lines imported successfully.
	Added int `json:"added"`
	// TotalQuantity sums the quantities of those lines.
	TotalQuantity int           `json:"total_quantity"`
	Failures      []LineFailure `json:"failures"`
}

// Importer ingests free-text decklists into a user's Box.
type Importer struct {
	resolver cardResolver
	units    repo.InventoryRepository
	feed     repo.FeedRepository
	log      *zap.SugaredLogger
}

// NewImporter creates the import pipeline.
func NewImporter(resolver cardResolver, units repo.InventoryRepository, feed repo.FeedRepository, log *zap.SugaredLogger) *Importer {
	return &Importer{resolver: resolver, units: units, feed: feed, log: log}
}

// Import parses text line by line, resolves each card reference, and merges
// the quantities into the user's Box. One bad line never aborts the batch:
// parse and resolve failures are collected with the offending line verbatim
// and processing continues. Each successful line commits on its own, so a
// cancelled import keeps the lines already ingested; resubmitting the same
// text adds quantity again (additive by design — the report shows what
// landed).
func (im *Importer) Import(ctx context.Context, text string, userID int64) (*ImportResult, error) {
	result := &ImportResult{Failures: []LineFailure{}}
	imported := make([]string, 0, 8)

	for _, raw := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		line := decklist.ParseLine(raw)
		switch line.Kind {
		case decklist.LineSkip:
			continue
		case decklist.LineInvalid:
			result.Failures = append(result.Failures, LineFailure{Line: line.Raw, Reason: line.Reason})
			continue
		}

		card, err := im.resolver.Resolve(ctx, line.Card)
		if err != nil {
			result.Failures = append(result.Failures, LineFailure{
				Line:   line.Card.Raw,
				Reason: failureReason(err),
			})
			continue
		}

		_, err = im.units.Upsert(ctx, repo.UpsertParams{
			OwnerID:        userID,
			CardScryfallID: card.ScryfallID,
			Foil:           line.Card.Foil,
			Condition:      model.ConditionNM,
			Location:       model.Box(),
			Delta:          line.Card.Quantity,
		})
		if err != nil {
			result.Failures = append(result.Failures, LineFailure{Line: line.Card.Raw, Reason: err.Error()})
			continue
		}

		result.Added++
		result.TotalQuantity += line.Card.Quantity
		imported = append(imported, card.Name)
	}

	if len(imported) > 0 {
		// Feed post is informational; its failure must not fail an import
		// whose ledger writes already committed.
		if err := im.feed.Record(ctx, userID, model.EventCardsImported, map[string]any{
			"cards": imported,
			"total": result.TotalQuantity,
		}); err != nil {
			im.log.Warnw("import feed event failed", "user_id", userID, "error", err)
		}
	}

	im.log.Infow("import complete",
		"user_id", userID,
		"added", result.Added,
		"total_quantity", result.TotalQuantity,
		"failures", len(result.Failures),
	)
	return result, nil
}

func failureReason(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return "card not found: '" + nf.Name + "'"
	}
	return err.Error()
}
