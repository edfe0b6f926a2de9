package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"parkgate/internal/model"
	repoMocks "parkgate/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		level      string
		title      string
		setupMocks func(m *repoMocks.MockNotificationRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "blank level means info",
			level: "",
			title: " Barrier restarted ",
			setupMocks: func(m *repoMocks.MockNotificationRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
					return n.Level == model.LevelInfo && n.Title == "Barrier restarted"
				})).Return(&model.Notification{ID: 1, Level: model.LevelInfo}, nil)
			},
		},
		{
			name:  "danger",
			level: model.LevelDanger,
			title: "Wrong ticket code entered 3 times",
			setupMocks: func(m *repoMocks.MockNotificationRepository) {
				m.On("Create", ctx, mock.Anything).Return(&model.Notification{ID: 2, Level: model.LevelDanger}, nil)
			},
		},
		{
			name:       "unknown level",
			level:      "panic",
			title:      "x",
			setupMocks: func(m *repoMocks.MockNotificationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "blank title",
			level:      model.LevelInfo,
			title:      "  ",
			setupMocks: func(m *repoMocks.MockNotificationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "title too long",
			level:      model.LevelInfo,
			title:      strings.Repeat("đ", maxNotificationTitle+1),
			setupMocks: func(m *repoMocks.MockNotificationRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:  "repository error",
			level: model.LevelWarning,
			title: "x",
			setupMocks: func(m *repoMocks.MockNotificationRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "save notification: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockNotificationRepository)
			tt.setupMocks(m)

			n, err := NewNotificationService(m).Notify(ctx, tt.level, tt.title, "")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.NotZero(t, n.ID)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestNotificationService_ListRecent(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		asked, want int
	}{{0, 10}, {-3, 10}, {25, 25}, {500, 10}} {
		m := new(repoMocks.MockNotificationRepository)
		m.On("ListRecent", ctx, tc.want).Return([]model.Notification{}, nil).Once()

		_, err := NewNotificationService(m).ListRecent(ctx, tc.asked)
		require.NoError(t, err)
		m.AssertExpectations(t)
	}
}
