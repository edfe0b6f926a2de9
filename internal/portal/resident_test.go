package portal

import (
	"context"
	"errors"
	"testing"

	"parkgate/internal/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResidentHarness(t *testing.T) (*Resident, *fakeAPI, *fakeField, *fakeRegion, *fakeAlerter) {
	t.Helper()
	api, content, result, alert := &fakeAPI{}, &fakeField{}, &fakeRegion{}, &fakeAlerter{}
	r, err := NewResident(ResidentView{Content: content, Result: result, Alert: alert}, api, Options{})
	require.NoError(t, err)
	return r, api, content, result, alert
}

func TestResident_EmptyContentBlocks(t *testing.T) {
	r, api, content, result, alert := newResidentHarness(t)
	content.value = " \n "

	assert.Equal(t, OutcomeBlocked, r.Submit(context.Background()))
	assert.Equal(t, []string{"Please enter your request"}, alert.alerts)
	assert.Zero(t, api.Calls("support"))
	assert.Empty(t, result.history)
}

func TestResident_SuccessClearsInput(t *testing.T) {
	r, api, content, result, _ := newResidentHarness(t)
	content.value = "  The barrier is stuck  "
	api.support = func(_ context.Context, c string) (*apiclient.SupportResult, error) {
		assert.Equal(t, "The barrier is stuck", c)
		return &apiclient.SupportResult{Envelope: okEnvelope()}, nil
	}

	assert.Equal(t, OutcomeSucceeded, r.Submit(context.Background()))
	assert.Contains(t, string(result.history[0]), "Sending request...")
	assert.Contains(t, result.Current(), "Request sent to the administrators.")
	assert.Equal(t, "", content.value)
}

func TestResident_FailureKeepsInput(t *testing.T) {
	t.Run("application failure", func(t *testing.T) {
		r, api, content, result, _ := newResidentHarness(t)
		content.value = "help"
		api.support = func(context.Context, string) (*apiclient.SupportResult, error) {
			return &apiclient.SupportResult{Envelope: rejected("")}, nil
		}

		assert.Equal(t, OutcomeRejected, r.Submit(context.Background()))
		assert.Contains(t, result.Current(), "Sending failed.")
		assert.Equal(t, "help", content.value)
	})

	t.Run("transport failure", func(t *testing.T) {
		r, api, content, result, _ := newResidentHarness(t)
		content.value = "help"
		api.support = func(context.Context, string) (*apiclient.SupportResult, error) {
			return nil, errors.New("reset by peer")
		}

		assert.Equal(t, OutcomeFailed, r.Submit(context.Background()))
		assert.Equal(t, 1, result.Count(msgAPIError))
		assert.Equal(t, "help", content.value)
	})
}
