package engine_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsim/internal/domain"
	"gstsim/internal/engine"
)

func TestTransition_Table(t *testing.T) {
	legal := []struct {
		from  domain.FilingStatus
		event domain.FilingEvent
		to    domain.FilingStatus
	}{
		{domain.FilingStatusDraft, domain.FilingEventSubmit, domain.FilingStatusSubmitted},
		{domain.FilingStatusDraft, domain.FilingEventReject, domain.FilingStatusRejected},
		{domain.FilingStatusDraft, domain.FilingEventCancel, domain.FilingStatusCancelled},
		{domain.FilingStatusSubmitted, domain.FilingEventFile, domain.FilingStatusFiled},
		{domain.FilingStatusSubmitted, domain.FilingEventReject, domain.FilingStatusRejected},
		{domain.FilingStatusSubmitted, domain.FilingEventCancel, domain.FilingStatusCancelled},
	}
	for _, tc := range legal {
		next, err := engine.Transition(tc.from, tc.event)
		require.NoError(t, err, "%s + %s", tc.from, tc.event)
		assert.Equal(t, tc.to, next)
	}

	illegal := []struct {
		from  domain.FilingStatus
		event domain.FilingEvent
	}{
		{domain.FilingStatusDraft, domain.FilingEventFile},
		{domain.FilingStatusSubmitted, domain.FilingEventSubmit},
		{domain.FilingStatusFiled, domain.FilingEventSubmit},
		{domain.FilingStatusFiled, domain.FilingEventCancel},
		{domain.FilingStatusRejected, domain.FilingEventSubmit},
		{domain.FilingStatusCancelled, domain.FilingEventFile},
	}
	for _, tc := range illegal {
		_, err := engine.Transition(tc.from, tc.event)
		var ise *domain.IllegalStateError
		require.ErrorAs(t, err, &ise, "%s + %s", tc.from, tc.event)
		assert.Equal(t, tc.from, ise.Current)
		assert.Contains(t, ise.Error(), string(tc.from))
	}
}

func TestNewAckNumber_Format(t *testing.T) {
	now := time.Date(2024, 9, 15, 12, 30, 45, 0, time.UTC)
	ack := engine.NewAckNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^ACK20240915123045[0-9A-Za-z]+$`), ack)
	assert.NotEqual(t, ack, engine.NewAckNumber(now), "random suffix should differ")
}

func TestSubmitReturn_HappyPath(t *testing.T) {
	ret := validReturn()
	now := time.Date(2024, 10, 11, 9, 0, 0, 0, time.UTC)

	require.NoError(t, engine.SubmitReturn(ret, now))

	assert.Equal(t, domain.FilingStatusSubmitted, ret.Status)
	require.NotNil(t, ret.FilingDate)
	assert.Equal(t, now, *ret.FilingDate)
	assert.NotEmpty(t, ret.AcknowledgmentNumber)
	assert.Contains(t, ret.LearningProgress.CompletedSteps, engine.StepReturnSubmitted)
	assert.Equal(t, 20, ret.LearningProgress.Score)
	// summary recomputed as part of submit
	assertDecimal(t, "1705", ret.TaxSummary.GrandTotal)
}

func TestSubmitReturn_SecondSubmitRejected(t *testing.T) {
	ret := validReturn()
	require.NoError(t, engine.SubmitReturn(ret, time.Now()))

	firstAck := ret.AcknowledgmentNumber
	firstDate := *ret.FilingDate

	err := engine.SubmitReturn(ret, time.Now().Add(time.Hour))
	var ise *domain.IllegalStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, domain.FilingStatusSubmitted, ise.Current)

	// filing metadata must not be overwritten
	assert.Equal(t, firstAck, ret.AcknowledgmentNumber)
	assert.Equal(t, firstDate, *ret.FilingDate)
}

func TestSubmitReturn_ScoreAwardCappedAt100(t *testing.T) {
	cases := []struct {
		start, want int
	}{
		{0, 20},
		{70, 90},
		{85, 100},
		{100, 100},
	}
	for _, tc := range cases {
		ret := validReturn()
		ret.LearningProgress.Score = tc.start
		require.NoError(t, engine.SubmitReturn(ret, time.Now()))
		assert.Equal(t, tc.want, ret.LearningProgress.Score, "start=%d", tc.start)
	}
}

func TestSubmitReturn_InvalidHeaderRejected(t *testing.T) {
	ret := validReturn()
	ret.GSTIN = "bogus"

	var ve *domain.ValidationError
	require.ErrorAs(t, engine.SubmitReturn(ret, time.Now()), &ve)
	assert.Equal(t, domain.FilingStatusDraft, ret.Status)
	assert.Nil(t, ret.FilingDate)
}

func TestSubmitInvoice_HappyPath(t *testing.T) {
	inv := validInvoice()
	now := time.Now()

	require.NoError(t, engine.SubmitInvoice(inv, now))

	assert.Equal(t, domain.FilingStatusSubmitted, inv.Status)
	require.NotNil(t, inv.FilingDate)
	assert.NotEmpty(t, inv.AckNo)
	assert.Equal(t, 20, inv.LearningProgress.Score)
	assert.False(t, inv.TaxSummary.GrandTotal.IsZero())
}

func TestSubmitInvoice_EmptyItemsRejected(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = nil

	err := engine.SubmitInvoice(inv, time.Now())
	var pre *domain.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, domain.FilingStatusDraft, inv.Status)
	assert.Empty(t, inv.AckNo)
}

func TestSubmitInvoice_AlreadySubmittedRejected(t *testing.T) {
	inv := validInvoice()
	require.NoError(t, engine.SubmitInvoice(inv, time.Now()))

	err := engine.SubmitInvoice(inv, time.Now())
	var ise *domain.IllegalStateError
	require.ErrorAs(t, err, &ise)
}
