package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/payroll"
)

func TestService_Create(t *testing.T) {
	components := payroll.Components{
		BaseSalary:  dec("2000"),
		OvertimePay: dec("100"),
		Bonuses:     dec("50"),
		Allowances:  dec("25"),
		Tax:         dec("200"),
	}

	type testCase struct {
		name      string
		params    payroll.CreateParams
		setupMock func(m *payroll.MockRepository)
		wantErr   bool
		wantValid bool
		wantNet   string
	}

	tests := []testCase{
		{
			name: "PaidUsesConfiguredAccount",
			params: payroll.CreateParams{
				EmployeeID:  3,
				Components:  components,
				PaymentDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
				Status:      payroll.StatusPaid,
			},
			setupMock: func(m *payroll.MockRepository) {
				m.EXPECT().
					CreatePayroll(gomock.Any(), gomock.Any(), int64(7)).
					DoAndReturn(func(_ context.Context, rec *payroll.Record, _ int64) error {
						rec.ID = 1
						return nil
					})
			},
			wantNet: "1975",
		},
		{
			name: "DefaultsToPending",
			params: payroll.CreateParams{
				EmployeeID: 3,
				Components: components,
			},
			setupMock: func(m *payroll.MockRepository) {
				m.EXPECT().
					CreatePayroll(gomock.Any(), gomock.Any(), int64(7)).
					DoAndReturn(func(_ context.Context, rec *payroll.Record, _ int64) error {
						assert.Equal(t, payroll.StatusPending, rec.Status)
						rec.ID = 2
						return nil
					})
			},
			wantNet: "1975",
		},
		{
			name: "NegativeComponent",
			params: payroll.CreateParams{
				EmployeeID: 3,
				Components: payroll.Components{BaseSalary: dec("-100")},
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "UnknownStatus",
			params: payroll.CreateParams{
				EmployeeID: 3,
				Components: components,
				Status:     payroll.Status("Queued"),
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "RepoError",
			params: payroll.CreateParams{
				EmployeeID: 3,
				Components: components,
			},
			setupMock: func(m *payroll.MockRepository) {
				m.EXPECT().
					CreatePayroll(gomock.Any(), gomock.Any(), int64(7)).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := payroll.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := payroll.NewService(repo, 7)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantValid {
					assert.True(t, fault.IsValidation(err), "expected validation error, got %v", err)
				}

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.True(t, got.NetPay.Equal(dec(tt.wantNet)), "net %s", got.NetPay)
			assert.True(t, got.GrossSalary.Equal(dec("2175")))
			assert.True(t, got.TotalDeductions.Equal(dec("200")))
		})
	}
}
