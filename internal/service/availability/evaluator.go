package availability

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Evaluator applies the ordered rule chain to one (slot, advisor) pair
type Evaluator struct {
	rules []Rule
}

// NewEvaluator builds the default rule chain.
// The consecutive-slots rule is appended only when enforceConsecutive is set.
func NewEvaluator(enforceConsecutive bool) *Evaluator {
	rules := []Rule{
		RuleFunc(receptionRule),
		RuleFunc(shiftRule),
		RuleFunc(lunchRule),
		RuleFunc(blockRule),
		RuleFunc(assignmentRule),
		RuleFunc(doubleBookingRule),
		RuleFunc(capacityRule),
	}
	if enforceConsecutive {
		rules = append(rules, RuleFunc(consecutiveRule))
	}
	return &Evaluator{rules: rules}
}

// Evaluate returns the verdict of the first failing rule, or an eligible verdict.
// It never changes c.Used.
func (e *Evaluator) Evaluate(c *Candidate) domain.AdvisorVerdict {
	verdict := domain.AdvisorVerdict{
		AdvisorID:   c.Advisor.ID,
		AdvisorName: c.Advisor.Name,
	}

	for _, rule := range e.rules {
		if reason, ok := rule.Check(c); !ok {
			verdict.Reason = reason
			return verdict
		}
	}

	verdict.Eligible = true
	return verdict
}
