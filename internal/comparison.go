package internal

import (
	"fmt"
	specs "github.com/chrisconley/trafficreport/specs"
	"strconv"
)

type Comparison struct {
	leader            string
	percentDifference Decimal
}

// compare reports which direction carried more traffic and by how much,
// relative to the larger total. Equal totals, including 0/0, are a tie, so
// the divisor is always positive.
func compare(totalDir1, totalDir2 int) Comparison {
	if totalDir1 == totalDir2 {
		return Comparison{leader: specs.DirectionTie, percentDifference: NewDecimalFromInt(0).Round(1)}
	}

	leader, larger, smaller := specs.DirectionOne, totalDir1, totalDir2
	if totalDir2 > totalDir1 {
		leader, larger, smaller = specs.DirectionTwo, totalDir2, totalDir1
	}

	return Comparison{
		leader:            leader,
		percentDifference: ratio((larger-smaller)*100, larger, 1),
	}
}

func (c Comparison) Leader() string {
	return c.leader
}

func (c Comparison) IsTie() bool {
	return c.leader == specs.DirectionTie
}

func (c Comparison) PercentDifference() Decimal {
	return c.percentDifference
}

func (c Comparison) Narrative() string {
	switch c.leader {
	case specs.DirectionOne:
		return fmt.Sprintf("%s had %s%% more traffic than %s during this period.",
			DirectionOne.DisplayName(), c.percentText(), DirectionTwo.DisplayName())
	case specs.DirectionTwo:
		return fmt.Sprintf("%s had %s%% more traffic than %s during this period.",
			DirectionTwo.DisplayName(), c.percentText(), DirectionOne.DisplayName())
	default:
		return "Both directions had equal traffic during this period."
	}
}

func (c Comparison) percentText() string {
	return strconv.FormatFloat(c.percentDifference.Float64(), 'f', -1, 64)
}

func (c Comparison) ToSpec() specs.ComparisonSpec {
	return specs.ComparisonSpec{
		Leader:            c.leader,
		PercentDifference: c.percentDifference.Float64(),
		Narrative:         c.Narrative(),
	}
}

// Compare implements specs.Compare.
func Compare(totalDir1, totalDir2 int) specs.ComparisonSpec {
	return compare(totalDir1, totalDir2).ToSpec()
}
