package mocks

import (
	"context"

	"parkgate/internal/model"
	"parkgate/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockGateService struct {
	mock.Mock
}

func (m *MockGateService) ResidentFace(ctx context.Context, image []byte) (*service.ResidentPass, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResidentPass), args.Error(1)
}

func (m *MockGateService) BackupLogin(ctx context.Context, code string) (*service.ResidentPass, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResidentPass), args.Error(1)
}

func (m *MockGateService) ResidentCheckin(ctx context.Context, residentID int64, plate string) (*service.ResidentPass, error) {
	args := m.Called(ctx, residentID, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResidentPass), args.Error(1)
}

func (m *MockGateService) ResidentCheckout(ctx context.Context, residentID int64, plate string) (*service.ResidentPass, error) {
	args := m.Called(ctx, residentID, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResidentPass), args.Error(1)
}

func (m *MockGateService) GuestCheckin(ctx context.Context, plate string, image []byte) (*service.Ticket, error) {
	args := m.Called(ctx, plate, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Ticket), args.Error(1)
}

func (m *MockGateService) GuestCheckout(ctx context.Context, ticketCode, source string, image []byte) (*service.Settlement, error) {
	args := m.Called(ctx, ticketCode, source, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Settlement), args.Error(1)
}

func (m *MockGateService) OpenSessions(ctx context.Context) ([]service.OpenSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.OpenSession), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Daily(ctx context.Context, date string, detail bool) (*model.DailyReport, error) {
	args := m.Called(ctx, date, detail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyReport), args.Error(1)
}

type MockResidentService struct {
	mock.Mock
}

func (m *MockResidentService) Create(ctx context.Context, r *model.Resident) (*model.Resident, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentService) List(ctx context.Context, limit, offset int) (*service.ResidentListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResidentListResult), args.Error(1)
}

func (m *MockResidentService) Update(ctx context.Context, id int64, patch model.ResidentPatch) (*model.Resident, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentService) Deactivate(ctx context.Context, id int64) (*model.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentService) IssueBackupCode(ctx context.Context, id int64, code string) (*model.BackupCode, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackupCode), args.Error(1)
}

type MockSupportService struct {
	mock.Mock
}

func (m *MockSupportService) Submit(ctx context.Context, content string) (*model.SupportRequest, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportRequest), args.Error(1)
}

func (m *MockSupportService) ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SupportRequest), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, fullName string) (*model.AdminUser, error) {
	args := m.Called(ctx, username, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAuthService) Bootstrap(ctx context.Context, username, password, fullName string) (*model.AdminUser, error) {
	args := m.Called(ctx, username, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *model.AdminUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.AdminUser), args.Error(2)
}

func (m *MockAuthService) Verify(token string) (*service.AdminClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminClaims), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, level, title, message string) (*model.Notification, error) {
	args := m.Called(ctx, level, title, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) ListRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}
