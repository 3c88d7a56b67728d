package app

import (
	"context"
	"math"
	"sort"

	"placementcms/domain/placement"
	"placementcms/internal"
	apperrors "placementcms/internal/errors"
	"placementcms/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	gonumstat "gonum.org/v1/gonum/stat"
)

// bandDividers are the histogram edges for Bands, lowest first
var bandDividers = []float64{60, 70, 80, 90, math.Inf(1)}

// DashboardService aggregates the overview numbers
type DashboardService struct {
	students   ports.StudentRepository
	companies  ports.CompanyRepository
	placements ports.PlacementRepository
	threshold  float64
	logger     *internal.Logger
}

// NewDashboardService creates a dashboard service; threshold is the
// eligibility cut-off on btech percentage
func NewDashboardService(students ports.StudentRepository, companies ports.CompanyRepository, placements ports.PlacementRepository, threshold float64, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DashboardService{
		students:   students,
		companies:  companies,
		placements: placements,
		threshold:  threshold,
		logger:     logger,
	}
}

// Stats loads counts concurrently and derives the btech distribution
func (s *DashboardService) Stats(ctx context.Context) (*placement.DashboardStats, error) {
	var (
		students                         []placement.Student
		companies, placements, placedCnt int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.students.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = s.companies.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		placements, err = s.placements.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		placedCnt, err = s.placements.CountPlaced(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, apperrors.Wrap(err, "failed to load dashboard stats"))
	}

	out := &placement.DashboardStats{
		Students:   len(students),
		Companies:  companies,
		Placements: placements,
		Placed:     placedCnt,
		Branches:   make(map[string]placement.BranchStats),
		Bands:      bandCounts(students),
	}

	pcts := make(stats.Float64Data, 0, len(students))
	branchTotals := make(map[string]float64)
	for _, st := range students {
		pcts = append(pcts, st.BtechPercentage)
		eligible := placement.Eligible(st, s.threshold)
		if eligible {
			out.Eligible++
		}

		b := out.Branches[st.Branch]
		b.Students++
		if eligible {
			b.Eligible++
		}
		out.Branches[st.Branch] = b
		branchTotals[st.Branch] += st.BtechPercentage
	}
	for name, b := range out.Branches {
		b.AverageBtech = round2(branchTotals[name] / float64(b.Students))
		out.Branches[name] = b
	}

	if len(pcts) > 0 {
		// errors only occur on empty input
		mean, _ := pcts.Mean()
		median, _ := pcts.Median()
		p90, _ := pcts.Percentile(90)
		out.AverageBtech = round2(mean)
		out.MedianBtech = round2(median)
		out.P90Btech = round2(p90)
	}

	s.logger.Debug("[DashboardService] stats: students=%d companies=%d placements=%d", out.Students, out.Companies, out.Placements)
	return out, nil
}

// bandCounts buckets btech percentages into the named bands, highest band first
func bandCounts(students []placement.Student) []placement.BandCount {
	xs := make([]float64, 0, len(students))
	for _, st := range students {
		if st.BtechPercentage >= bandDividers[0] && !math.IsInf(st.BtechPercentage, 0) && !math.IsNaN(st.BtechPercentage) {
			xs = append(xs, st.BtechPercentage)
		}
	}
	sort.Float64s(xs)

	counts := make([]float64, len(bandDividers)-1)
	if len(xs) > 0 {
		counts = gonumstat.Histogram(nil, bandDividers, xs, nil)
	}

	// counts are lowest band first; placement.Bands is highest first
	out := make([]placement.BandCount, len(placement.Bands))
	for i, band := range placement.Bands {
		out[i] = placement.BandCount{Band: band, Count: int(counts[len(counts)-1-i])}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
