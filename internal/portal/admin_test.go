package portal

import (
	"context"
	"errors"
	"testing"

	"parkgate/internal/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminHarness struct {
	admin   *Admin
	api     *fakeAPI
	date    *fakeField
	summary *fakeRegion
	detail  *fakeRegion
	alert   *fakeAlerter
}

func newAdminHarness(t *testing.T) *adminHarness {
	t.Helper()
	h := &adminHarness{
		api:     &fakeAPI{},
		date:    &fakeField{},
		summary: &fakeRegion{},
		detail:  &fakeRegion{},
		alert:   &fakeAlerter{},
	}
	a, err := NewAdmin(AdminView{Date: h.date, Summary: h.summary, Detail: h.detail, Alert: h.alert}, h.api, Options{})
	require.NoError(t, err)
	h.admin = a
	return h
}

func TestAdmin_EmptyDateBlocks(t *testing.T) {
	h := newAdminHarness(t)

	assert.Equal(t, OutcomeBlocked, h.admin.LoadSummary(context.Background()))
	assert.Equal(t, OutcomeBlocked, h.admin.LoadDetail(context.Background()))

	assert.Equal(t, []string{"Please select a date", "Please select a date"}, h.alert.alerts)
	assert.Zero(t, h.api.Calls("report"))
	assert.Empty(t, h.summary.history)
	assert.Empty(t, h.detail.history)
}

func TestAdmin_Summary(t *testing.T) {
	h := newAdminHarness(t)
	h.date.value = "2024-05-01"
	h.api.report = func(_ context.Context, date string, detail bool) (*apiclient.DailyReport, error) {
		assert.Equal(t, "2024-05-01", date)
		assert.False(t, detail)
		return &apiclient.DailyReport{Envelope: okEnvelope(), Date: date, ResidentCount: 42, GuestCount: 7, Revenue: 1250000}, nil
	}

	assert.Equal(t, OutcomeSucceeded, h.admin.LoadSummary(context.Background()))

	assert.Contains(t, string(h.summary.history[0]), "Loading report...")
	assert.Contains(t, h.summary.Current(), "<b>2024-05-01</b>")
	assert.Contains(t, h.summary.Current(), "<b>42</b>")
	assert.Contains(t, h.summary.Current(), "<b>7</b>")
	assert.Contains(t, h.summary.Current(), "<b>1,250,000 VNĐ</b>")
	assert.Empty(t, h.detail.history)
}

func TestAdmin_DetailTable(t *testing.T) {
	h := newAdminHarness(t)
	h.date.value = "2024-05-01"
	h.api.report = func(_ context.Context, _ string, detail bool) (*apiclient.DailyReport, error) {
		assert.True(t, detail)
		return &apiclient.DailyReport{
			Envelope: okEnvelope(),
			Date:     "2024-05-01",
			Sessions: []apiclient.Session{
				{PlateNumber: "51A-12345", TicketCode: "123456", CheckinTime: "08:00", CheckoutTime: "10:00", Amount: 20000},
			},
		}, nil
	}

	assert.Equal(t, OutcomeSucceeded, h.admin.LoadDetail(context.Background()))

	require.Len(t, h.detail.history, 2)
	assert.Equal(t, "", string(h.detail.history[0]))
	table := h.detail.Current()
	assert.Equal(t, 1, h.detail.Count("<tr>\n      <td>"))
	for _, cell := range []string{"<td>51A-12345</td>", "<td>123456</td>", "<td>08:00</td>", "<td>10:00</td>", "<td>20,000 VNĐ</td>"} {
		assert.Contains(t, table, cell)
	}
}

func TestAdmin_DetailKeepsOrder(t *testing.T) {
	h := newAdminHarness(t)
	h.date.value = "2024-05-01"
	h.api.report = func(context.Context, string, bool) (*apiclient.DailyReport, error) {
		return &apiclient.DailyReport{Envelope: okEnvelope(), Sessions: []apiclient.Session{
			{TicketCode: "900000"}, {TicketCode: "100000"},
		}}, nil
	}

	h.admin.LoadDetail(context.Background())

	table := h.detail.Current()
	assert.Less(t, indexOf(table, "900000"), indexOf(table, "100000"))
}

func TestAdmin_DetailWithoutSessionsStaysCleared(t *testing.T) {
	h := newAdminHarness(t)
	h.date.value = "2024-05-01"
	h.api.report = func(context.Context, string, bool) (*apiclient.DailyReport, error) {
		return &apiclient.DailyReport{Envelope: okEnvelope()}, nil
	}

	h.admin.LoadDetail(context.Background())

	assert.Equal(t, "", h.detail.Current())
	assert.Len(t, h.detail.history, 1)
}

func TestAdmin_Failures(t *testing.T) {
	t.Run("application failure", func(t *testing.T) {
		h := newAdminHarness(t)
		h.date.value = "2024-05-01"
		h.api.report = func(context.Context, string, bool) (*apiclient.DailyReport, error) {
			return &apiclient.DailyReport{Envelope: rejected("boom")}, nil
		}

		assert.Equal(t, OutcomeRejected, h.admin.LoadDetail(context.Background()))
		assert.Contains(t, h.summary.Current(), "Could not load the report.")
		assert.Equal(t, "", h.detail.Current())
	})

	t.Run("transport failure", func(t *testing.T) {
		h := newAdminHarness(t)
		h.date.value = "2024-05-01"
		h.api.report = func(context.Context, string, bool) (*apiclient.DailyReport, error) {
			return nil, errors.New("timeout")
		}

		assert.Equal(t, OutcomeFailed, h.admin.LoadDetail(context.Background()))
		assert.Equal(t, 1, h.summary.Count(msgAPIError))
		assert.Equal(t, "", h.detail.Current())
	})
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
