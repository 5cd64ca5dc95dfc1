package filter

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jonathan/job-tracker/internal/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names a sortable column
type SortField string

// SortField constants
const (
	SortAppliedDate   SortField = "applied_date"
	SortCompany       SortField = "company"
	SortRole          SortField = "role"
	SortStatus        SortField = "status"
	SortPriority      SortField = "priority"
	SortInterviewDate SortField = "interview_date"
)

// SortFields lists every supported sort field
var SortFields = []SortField{SortAppliedDate, SortCompany, SortRole, SortStatus, SortPriority, SortInterviewDate}

// SortOrder is asc or desc
type SortOrder string

// SortOrder constants
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortSpec selects the sort field and direction
type SortSpec struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSort shows the most recent applications first
var DefaultSort = SortSpec{Field: SortAppliedDate, Order: Desc}

// ParseSortSpec validates user-supplied field and order strings.
func ParseSortSpec(field, order string) (SortSpec, error) {
	spec := SortSpec{Field: SortField(field), Order: SortOrder(order)}
	if field == "" {
		spec.Field = DefaultSort.Field
	}
	if order == "" {
		spec.Order = DefaultSort.Order
	}
	if !slices.Contains(SortFields, spec.Field) {
		return SortSpec{}, fmt.Errorf("unknown sort field %q", field)
	}
	if spec.Order != Asc && spec.Order != Desc {
		return SortSpec{}, fmt.Errorf("unknown sort order %q (want asc or desc)", order)
	}
	return spec, nil
}

// Sort returns a new slice ordered by spec. The sort is stable, so records that
// compare equal keep their input order. Missing or unparsable dates order as
// the Unix epoch; a missing priority ranks 0.
func Sort(records []types.JobApplication, spec SortSpec) []types.JobApplication {
	out := slices.Clone(records)
	compare := comparator(spec.Field)
	if compare == nil {
		return out
	}

	slices.SortStableFunc(out, func(a, b types.JobApplication) int {
		c := compare(&a, &b)
		if spec.Order == Desc {
			return -c
		}
		return c
	})
	return out
}

func comparator(field SortField) func(a, b *types.JobApplication) int {
	switch field {
	case SortAppliedDate:
		return func(a, b *types.JobApplication) int {
			return types.ParseDateOrEpoch(a.AppliedDate).Compare(types.ParseDateOrEpoch(b.AppliedDate))
		}
	case SortInterviewDate:
		return func(a, b *types.JobApplication) int {
			return types.ParseDateOrEpoch(a.InterviewDate).Compare(types.ParseDateOrEpoch(b.InterviewDate))
		}
	case SortPriority:
		return func(a, b *types.JobApplication) int {
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
	case SortCompany:
		return collated(func(a *types.JobApplication) string { return a.Company })
	case SortRole:
		return collated(func(a *types.JobApplication) string { return a.Role })
	case SortStatus:
		return collated(func(a *types.JobApplication) string { return string(a.Status) })
	default:
		return nil
	}
}

// collated compares with English collation; a Collator is not safe for
// concurrent use, so each Sort call gets its own.
func collated(key func(*types.JobApplication) string) func(a, b *types.JobApplication) int {
	c := collate.New(language.English)
	return func(a, b *types.JobApplication) int {
		return c.CompareString(key(a), key(b))
	}
}
