package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teris-io/shortid"

	"gstsim/internal/domain"
)

// StepReturnSubmitted is appended to a learner's completed steps on submit.
const StepReturnSubmitted = "return-submitted"

// submitScoreAward is the fixed score granted for a successful submission.
const submitScoreAward = 20

// transitions is the full filing state machine. Absent entries are illegal.
// FILED, REJECTED and CANCELLED are terminal; FILED/REJECTED/CANCELLED are
// reached only through manual admin events, never automatically.
var transitions = map[domain.FilingStatus]map[domain.FilingEvent]domain.FilingStatus{
	domain.FilingStatusDraft: {
		domain.FilingEventSubmit: domain.FilingStatusSubmitted,
		domain.FilingEventReject: domain.FilingStatusRejected,
		domain.FilingEventCancel: domain.FilingStatusCancelled,
	},
	domain.FilingStatusSubmitted: {
		domain.FilingEventFile:   domain.FilingStatusFiled,
		domain.FilingEventReject: domain.FilingStatusRejected,
		domain.FilingEventCancel: domain.FilingStatusCancelled,
	},
}

// Transition applies a filing event to a status, returning the next status or
// an IllegalStateError naming the current one.
func Transition(current domain.FilingStatus, event domain.FilingEvent) (domain.FilingStatus, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return current, &domain.IllegalStateError{Current: current, Event: event}
}

var (
	sidOnce      sync.Once
	sidGenerator *shortid.Shortid
)

// NewAckNumber builds a simulated acknowledgment number: a fixed prefix, the
// submission timestamp, and a short random alphanumeric suffix. Uniqueness is
// probabilistic; collisions are acceptable for simulated filings.
func NewAckNumber(now time.Time) string {
	sidOnce.Do(func() {
		g, err := shortid.New(1, shortid.DefaultABC, 2342)
		if err != nil {
			panic("failed to initialize shortid generator: " + err.Error())
		}
		sidGenerator = g
	})
	suffix, err := sidGenerator.Generate()
	if err != nil {
		suffix = fmt.Sprintf("%06d", now.UnixNano()%1000000)
	}
	suffix = strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(suffix))
	return fmt.Sprintf("ACK%s%s", now.UTC().Format("20060102150405"), suffix)
}

// SubmitReturn moves a DRAFT return to SUBMITTED: it recomputes the summary,
// stamps the filing date and acknowledgment number, and credits the learner's
// progress. A second submit without an intervening reset is rejected.
func SubmitReturn(ret *domain.GSTReturn, now time.Time) error {
	next, err := Transition(ret.Status, domain.FilingEventSubmit)
	if err != nil {
		return err
	}
	if err := ValidateReturnHeader(ret); err != nil {
		return err
	}
	RecomputeReturn(ret)

	filedAt := now.UTC()
	ret.Status = next
	ret.FilingDate = &filedAt
	ret.AcknowledgmentNumber = NewAckNumber(now)

	MarkStepsCompleted(&ret.LearningProgress, []string{StepReturnSubmitted})
	AwardScore(&ret.LearningProgress, submitScoreAward)
	return nil
}

// SubmitInvoice moves a DRAFT invoice to SUBMITTED. An invoice with no line
// items cannot be submitted.
func SubmitInvoice(inv *domain.Invoice, now time.Time) error {
	next, err := Transition(inv.Status, domain.FilingEventSubmit)
	if err != nil {
		return err
	}
	if len(inv.LineItems) == 0 {
		return domain.NewPreconditionError("cannot submit an invoice with no line items")
	}
	if err := ValidateInvoiceParties(inv); err != nil {
		return err
	}
	if err := RecomputeInvoice(inv); err != nil {
		return err
	}

	filedAt := now.UTC()
	inv.Status = next
	inv.FilingDate = &filedAt
	inv.AckNo = NewAckNumber(now)

	MarkStepsCompleted(&inv.LearningProgress, []string{StepReturnSubmitted})
	AwardScore(&inv.LearningProgress, submitScoreAward)
	return nil
}
