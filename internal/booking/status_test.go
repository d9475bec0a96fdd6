package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusWaiting, StatusApproved, true},
		{StatusWaiting, StatusRejected, true},
		{StatusWaiting, StatusCanceled, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusWaiting, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusWaiting, false},
		{StatusCanceled, StatusApproved, false},
		{StatusWaiting, StatusWaiting, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusWaiting.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.False(t, Status("pending").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestParseState(t *testing.T) {
	t.Run("empty defaults to all", func(t *testing.T) {
		st, err := ParseState("")
		require.NoError(t, err)
		assert.Equal(t, StateAll, st)
	})

	t.Run("known states", func(t *testing.T) {
		for _, s := range []string{"all", "current", "past", "future", "waiting", "rejected"} {
			st, err := ParseState(s)
			require.NoError(t, err)
			assert.Equal(t, State(s), st)
		}
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := ParseState("approved-ish")
		assert.Error(t, err)
	})
}
