// Package process runs whole upload batches: every file independently
// decoded, identified, and mapped, with per-file failures collected
// rather than aborting the batch.
package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eyther/claimstats/internal/decode"
	"github.com/eyther/claimstats/internal/mapper"
	"github.com/eyther/claimstats/internal/model"
	"github.com/eyther/claimstats/internal/normalize"
	"github.com/eyther/claimstats/internal/payer"
)

// ErrUnknownPayer means no mapping in the table claimed a file's headers.
var ErrUnknownPayer = errors.New("no payer mapping matches file headers")

// DefaultConcurrency bounds parallel file decodes; spreadsheet parsing is
// memory-hungry, so the ceiling stays low regardless of GOMAXPROCS.
const DefaultConcurrency = 4

// Processor decodes, identifies, and maps batches of claim files.
type Processor struct {
	Mappings []payer.Mapping
	Log      zerolog.Logger
	// Concurrency caps parallel workers; <= 0 means DefaultConcurrency.
	Concurrency int
}

// fileSlot is one worker's private output. Workers never touch shared
// state; the merge happens single-threaded after the group returns.
type fileSlot struct {
	summary model.FileSummary
	claims  []model.StandardizedClaim
	err     *model.FileError
}

// Process runs the batch. The error return is reserved for batch-level
// failures (cancelled context, empty file list); per-file problems land
// in ProcessingErrors. Output order is input file order, row order within
// each file preserved.
func (p *Processor) Process(ctx context.Context, files []string) (*model.ProcessingResult, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to process")
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	if limit > len(files) {
		limit = len(files)
	}

	slots := make([]fileSlot, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = p.processFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}

	result := &model.ProcessingResult{
		BatchID: uuid.NewString(),
		Stats: model.BatchStats{
			TotalFiles:     len(files),
			PayerBreakdown: make(map[string]model.PayerTally),
		},
	}

	for _, slot := range slots {
		if slot.err != nil {
			result.ProcessingErrors = append(result.ProcessingErrors, slot.err)
			result.Stats.FailedFiles++
			continue
		}
		result.Stats.SuccessfulFiles++
		result.Stats.RowsSeen += slot.summary.RowsSeen
		result.Stats.RowsDropped += slot.summary.RowsDropped
		result.Stats.TotalRecords += len(slot.claims)
		result.ConsolidatedData = append(result.ConsolidatedData, slot.claims...)
		result.Files = append(result.Files, slot.summary)

		tally := result.Stats.PayerBreakdown[slot.summary.PayerName]
		tally.Files++
		tally.Records += len(slot.claims)
		result.Stats.PayerBreakdown[slot.summary.PayerName] = tally
	}

	p.Log.Info().
		Str("batch_id", result.BatchID).
		Int("files", result.Stats.TotalFiles).
		Int("failed", result.Stats.FailedFiles).
		Int("records", result.Stats.TotalRecords).
		Int("rows_dropped", result.Stats.RowsDropped).
		Msg("batch processed")
	return result, nil
}

func (p *Processor) processFile(file string) fileSlot {
	fail := func(err error, msg string) fileSlot {
		p.Log.Error().Err(err).Str("file", file).Msg(msg)
		return fileSlot{err: &model.FileError{
			FileName: file,
			Err:      err,
			Message:  err.Error(),
		}}
	}

	table, err := decode.Open(file)
	if err != nil {
		return fail(fmt.Errorf("decode: %w", err), "file decode failed")
	}

	mapping, ok := payer.Identify(table.Headers, p.Mappings)
	if !ok {
		return fail(fmt.Errorf("%w: %v", ErrUnknownPayer, table.Headers), "payer identification failed")
	}

	mapped := mapper.MapTable(table, mapping, p.Log)

	sha, err := normalize.FileHash(file)
	if err != nil {
		// The file already decoded; a hash failure is log-worthy but not
		// a reason to throw the rows away.
		p.Log.Warn().Err(err).Str("file", file).Msg("file hash failed")
	}

	p.Log.Info().
		Str("file", file).
		Str("payer", mapping.PayerName).
		Int("rows_mapped", len(mapped.Claims)).
		Int("rows_dropped", mapped.RowsDropped).
		Msg("file processed")

	return fileSlot{
		summary: model.FileSummary{
			FileName:    file,
			FileSHA256:  sha,
			PayerName:   mapping.PayerName,
			RowsSeen:    mapped.RowsSeen,
			RowsMapped:  len(mapped.Claims),
			RowsDropped: mapped.RowsDropped,
		},
		claims: mapped.Claims,
	}
}
