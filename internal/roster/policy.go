package roster

import (
	"fmt"
	"strings"

	domain "placementcms/domain/roster"
)

// AcceptPolicy is the single decision point turning accumulated records and
// row errors into an upload outcome.
type AcceptPolicy interface {
	Name() string
	Decide(records []domain.StudentRecord, errs []domain.RowError) *domain.UploadResult
}

// AllOrNothing rejects the whole upload when any row has an error
type AllOrNothing struct{}

func (AllOrNothing) Name() string { return "all_or_nothing" }

func (AllOrNothing) Decide(records []domain.StudentRecord, errs []domain.RowError) *domain.UploadResult {
	if len(errs) > 0 {
		return domain.Rejected(errs)
	}
	return domain.Accepted(records)
}

// PartialAccept keeps valid rows and reports the rest
type PartialAccept struct{}

func (PartialAccept) Name() string { return "partial" }

func (PartialAccept) Decide(records []domain.StudentRecord, errs []domain.RowError) *domain.UploadResult {
	switch {
	case len(errs) == 0:
		return domain.Accepted(records)
	case len(records) == 0:
		return domain.Rejected(errs)
	default:
		return domain.Partial(records, errs)
	}
}

// ParseAcceptPolicy resolves a config value; empty means AllOrNothing
func ParseAcceptPolicy(name string) (AcceptPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all_or_nothing":
		return AllOrNothing{}, nil
	case "partial":
		return PartialAccept{}, nil
	default:
		return nil, fmt.Errorf("unknown accept policy %q", name)
	}
}
