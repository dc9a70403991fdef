package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withAnswer(a Answers, id, v string) Answers {
	responses := make(map[string]string, len(a.Responses))
	for k, val := range a.Responses {
		responses[k] = val
	}
	responses[id] = v
	return Answers{Responses: responses, Zone: a.Zone}
}

func TestSectionsContent(t *testing.T) {
	s := Sections()
	require.Len(t, s, 4)
	assert.Len(t, BooleanItemIDs(), 14)
	assert.Equal(t, ZoneItemID, s[1].Items[1].ID)
	assert.Equal(t, ItemTypeZone, s[1].Items[1].Type)

	s[0].Items[0].Question = "changed"
	assert.NotEqual(t, "changed", Sections()[0].Items[0].Question)
}

func TestEvaluateApproval(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		want    State
		proceed bool
	}{
		{"green all yes", AllYes(ZoneGreen), StateApproved, true},
		{"amber all yes", AllYes(ZoneAmber), StateApproved, true},
		{"red all yes", AllYes(ZoneRed), StateRejected, false},
		{"zone missing", AllYes(""), StateInProgress, false},
		{"one no", withAnswer(AllYes(ZoneGreen), "ownAnalysis", AnswerNo), StateRejected, false},
		{"one unanswered", withAnswer(AllYes(ZoneGreen), "riskReward", ""), StateInProgress, false},
		{"empty", Answers{}, StateUnanswered, false},
		{"zone only", Answers{Zone: ZoneAmber}, StateInProgress, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.answers)
			assert.Equal(t, tt.want, ev.State)
			assert.Equal(t, tt.proceed, ev.CanProceed)
		})
	}
}

func TestEvaluateReportsItems(t *testing.T) {
	a := withAnswer(AllYes(""), "topSetup", AnswerNo)
	a = withAnswer(a, "acceptedLoss", "")

	ev := Evaluate(a)
	assert.Equal(t, []string{"topSetup"}, ev.FailedItems)
	assert.Equal(t, []string{"acceptedLoss", ZoneItemID}, ev.Unanswered)
	assert.True(t, ev.HasAnyInput)
	assert.False(t, ev.AllYes)
}

func TestFailureReasonPrecedence(t *testing.T) {
	no := withAnswer(AllYes(ZoneRed), "topSetup", AnswerNo)
	assert.Equal(t, ReasonRedZone, FailureReason(no))

	no.Zone = ""
	assert.Equal(t, ReasonZoneMissing, FailureReason(no))

	no.Zone = ZoneAmber
	assert.Equal(t, ReasonAnsweredNo, FailureReason(no))

	assert.Equal(t, ReasonZoneMissing, Evaluate(Answers{}).FailureReason)
	assert.Empty(t, Evaluate(AllYes(ZoneGreen)).FailureReason)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(AllYes(ZoneGreen)))
	assert.NoError(t, Validate(Answers{}))
	assert.ErrorIs(t, Validate(withAnswer(Answers{}, "vibes", AnswerYes)), ErrInvalidAnswers)
	assert.ErrorIs(t, Validate(withAnswer(Answers{}, "topSetup", "maybe")), ErrInvalidAnswers)
	assert.ErrorIs(t, Validate(Answers{Zone: "Yellow"}), ErrInvalidAnswers)
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	a := withAnswer(AllYes(ZoneAmber), ZoneItemID, ZoneAmber)

	s := Snapshot(a, at)
	assert.Equal(t, ZoneAmber, s.Zone)
	assert.True(t, s.AllYes)
	assert.Equal(t, at, s.RecordedAt)
	assert.Len(t, s.Responses, 14)
	assert.NotContains(t, s.Responses, ZoneItemID)
}
