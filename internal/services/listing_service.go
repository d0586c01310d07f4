package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/transformers"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/logger"
	"homeinsight-listings/pkg/metrics"
)

// ListingFailure records a listing that was skipped.
type ListingFailure struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

// NormalizeResult is the outcome of one bulk run. Properties are merged by
// address; price records keep listing order.
type NormalizeResult struct {
	RunID        string                `json:"run_id"`
	StartedAt    time.Time             `json:"started_at"`
	Duration     time.Duration         `json:"duration"`
	Listings     int                   `json:"listings"`
	Succeeded    int                   `json:"succeeded"`
	Failures     []ListingFailure      `json:"failures"`
	Properties   []models.PropertyInfo `json:"properties"`
	PriceRecords []models.PriceRecord  `json:"price_records"`
}

type ListingService struct {
	assembler transformers.ListingAssembler
	workers   int
	now       func() time.Time
}

func NewListingService(assembler transformers.ListingAssembler, workers int) *ListingService {
	if workers < 1 {
		workers = 1
	}
	return &ListingService{
		assembler: assembler,
		workers:   workers,
		now:       time.Now,
	}
}

type listingOutcome struct {
	info    models.PropertyInfo
	records []models.PriceRecord
	err     error
}

// NormalizeAll assembles every listing on a pool of workers. A listing
// that fails is logged and skipped; the run only fails when ctx ends.
func (s *ListingService) NormalizeAll(ctx context.Context, listings []models.RawListing) (*NormalizeResult, error) {
	result := &NormalizeResult{
		RunID:     uuid.New().String(),
		StartedAt: s.now(),
		Listings:  len(listings),
		Failures:  []ListingFailure{},
	}

	outcomes := make([]listingOutcome, len(listings))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for w := 0; w < s.workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				info, records, err := s.assembler.Transform(listings[i])
				outcomes[i] = listingOutcome{info: info, records: records, err: err}
			}
		}()
	}

	var cancelled error
feed:
	for i := range listings {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		logger.L().Errorf("run %s cancelled: %v", result.RunID, cancelled)
		return nil, cancelled
	}

	var infos []models.PropertyInfo
	for i, outcome := range outcomes {
		if outcome.err != nil {
			utils.RecordParseFailure(outcome.err)
			utils.RecordListingOutcome("failed")
			logger.L().Printf("run %s: skipping listing %d (%q): %v",
				result.RunID, i, listings[i].GeneralInfo.Address, outcome.err)
			result.Failures = append(result.Failures, ListingFailure{
				Index:   i,
				Address: listings[i].GeneralInfo.Address,
				Kind:    utils.FailureKind(outcome.err),
				Error:   outcome.err.Error(),
			})
			continue
		}
		utils.RecordListingOutcome("ok")
		metrics.PriceRecordsEmittedTotal.Add(float64(len(outcome.records)))
		result.Succeeded++
		infos = append(infos, outcome.info)
		result.PriceRecords = append(result.PriceRecords, outcome.records...)
	}

	result.Properties = MergePropertyInfo(infos)
	if result.PriceRecords == nil {
		result.PriceRecords = []models.PriceRecord{}
	}
	result.Duration = s.now().Sub(result.StartedAt)
	logger.L().Printf("run %s: %d listings, %d normalised, %d skipped, %d properties, %d price records in %s",
		result.RunID, result.Listings, result.Succeeded, len(result.Failures),
		len(result.Properties), len(result.PriceRecords), result.Duration)
	return result, nil
}
