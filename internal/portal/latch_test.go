package portal

import (
	"context"
	"testing"

	"parkgate/internal/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatch_AcquireRelease(t *testing.T) {
	l := NewLatch()
	ctl := &fakeControl{}

	release, ok := l.Acquire("a", ctl)
	require.True(t, ok)
	assert.True(t, l.InFlight("a"))

	_, ok = l.Acquire("a", nil)
	assert.False(t, ok)

	other, ok := l.Acquire("b", nil)
	require.True(t, ok)
	other()

	release()
	release()
	assert.False(t, l.InFlight("a"))
	assert.Equal(t, []bool{true, false}, ctl.states)
}

func TestGate_SecondTriggerWhileInFlightIsBusy(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	unblock := make(chan struct{})

	button := &fakeControl{}
	api := &fakeAPI{face: func(context.Context) (*apiclient.FaceResult, error) {
		close(entered)
		<-unblock
		return &apiclient.FaceResult{Envelope: okEnvelope(), ResidentName: "A", ResidentID: 1}, nil
	}}
	g, err := NewGate(GateView{
		Result: &fakeRegion{}, Alert: &fakeAlerter{}, BackupCode: &fakeField{}, TicketCode: &fakeField{},
		FaceButton: button,
	}, api, Options{})
	require.NoError(t, err)

	done := make(chan Outcome)
	go func() { done <- g.ResidentFace(ctx) }()
	<-entered

	assert.Equal(t, OutcomeBusy, g.ResidentFace(ctx))
	assert.Equal(t, 1, api.Calls("face"))

	close(unblock)
	assert.Equal(t, OutcomeSucceeded, <-done)
	assert.Equal(t, []bool{true, false}, button.states)
}

func TestGate_SharedLatchAcrossControllers(t *testing.T) {
	shared := NewLatch()
	release, ok := shared.Acquire(ActionGuestCheckin, nil)
	require.True(t, ok)
	defer release()

	api := &fakeAPI{}
	g, err := NewGate(GateView{
		Result: &fakeRegion{}, Alert: &fakeAlerter{}, BackupCode: &fakeField{}, TicketCode: &fakeField{},
	}, api, Options{Latch: shared})
	require.NoError(t, err)

	assert.Equal(t, OutcomeBusy, g.GuestCheckin(context.Background()))
	assert.Zero(t, api.Calls("checkin"))
}
