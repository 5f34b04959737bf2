package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datalens/domain/chart"
	"datalens/domain/table"
	"datalens/internal/aggregate"
)

// ChartRequest bundles one chart specification with its ordering and limit.
type ChartRequest struct {
	Spec  chart.Spec      `json:"spec"`
	Order chart.SortOrder `json:"order"`
	Limit int             `json:"limit"`
}

// ChartService projects datasets into plotting rows.
type ChartService struct{}

// NewChartService creates a new chart service.
func NewChartService() *ChartService {
	return &ChartService{}
}

// Rows evaluates a single chart request against a dataset.
func (s *ChartService) Rows(ds table.Dataset, req ChartRequest) chart.Rows {
	return aggregate.Run(ds, req.Spec, req.Order, req.Limit)
}

// Export serializes one chart request's result to delimited text.
func (s *ChartService) Export(ds table.Dataset, req ChartRequest, delimiter string) string {
	return aggregate.Export(s.Rows(ds, req), delimiter)
}

// BatchRows evaluates several chart requests against one dataset
// concurrently. The dataset is read-only for the pipeline, so the requests
// share it safely; results come back in request order.
func (s *ChartService) BatchRows(ctx context.Context, ds table.Dataset, reqs []ChartRequest) ([]chart.Rows, error) {
	results := make([]chart.Rows, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = aggregate.Run(ds, req.Spec, req.Order, req.Limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
