package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

func TestCreatePlan(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewCreatePlanUseCase(planRepo, nopLogger{})

	planRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	plan, err := uc.Execute(context.Background(), CreatePlanCommand{
		TenantID:      1,
		Name:          "Plano Pro",
		AmountInCents: 9990,
		Currency:      "BRL",
		Recurrence:    "monthly",
		Items: []PlanItemInput{
			{ItemID: 5, Name: "Curso de Go"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Plano Pro", plan.Name())
	assert.Equal(t, vo.RecurrenceMonthly, plan.Recurrence())
	require.Len(t, plan.Items(), 1)
	assert.Equal(t, uint(5), plan.Items()[0].ItemID)
	planRepo.AssertExpectations(t)
}

func TestCreatePlanInvalidRecurrence(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewCreatePlanUseCase(planRepo, nopLogger{})

	_, err := uc.Execute(context.Background(), CreatePlanCommand{
		TenantID:      1,
		Name:          "Plano Pro",
		AmountInCents: 9990,
		Recurrence:    "weekly",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePlanEmptyItemsAllowed(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewCreatePlanUseCase(planRepo, nopLogger{})

	planRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	plan, err := uc.Execute(context.Background(), CreatePlanCommand{
		TenantID:      1,
		Name:          "Plano Basico",
		AmountInCents: 2990,
		Recurrence:    "annually",
	})
	require.NoError(t, err)
	assert.Empty(t, plan.Items())
}

func TestUpdatePlan(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewUpdatePlanUseCase(planRepo, nopLogger{})

	plan := testPlan(t, 1)

	planRepo.On("GetBySID", mock.Anything, plan.SID()).Return(plan, nil).Once()
	planRepo.On("Update", mock.Anything, plan).Return(nil).Once()

	updated, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanSID:       plan.SID(),
		Name:          "Plano Premium",
		AmountInCents: 19990,
		Currency:      "BRL",
	})
	require.NoError(t, err)

	assert.Equal(t, "Plano Premium", updated.Name())
	assert.Equal(t, int64(19990), updated.Price().AmountInCents())
	planRepo.AssertExpectations(t)
}

func TestUpdatePlanNotFound(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewUpdatePlanUseCase(planRepo, nopLogger{})

	planRepo.On("GetBySID", mock.Anything, "plan_missing").
		Return(nil, apperrors.NewNotFoundError("plan not found")).Once()

	_, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanSID:       "plan_missing",
		Name:          "Plano",
		AmountInCents: 100,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListPlans(t *testing.T) {
	planRepo := new(mockPlanRepository)
	uc := NewListPlansUseCase(planRepo, nopLogger{})

	pagination := utils.Pagination{Page: 1, PageSize: 20}
	planRepo.On("ListByTenant", mock.Anything, uint(1), pagination).
		Return(nil, utils.NewPageResult(pagination, 0), nil).Once()

	plans, pageResult, err := uc.Execute(context.Background(), ListPlansQuery{
		TenantID:   1,
		Pagination: pagination,
	})
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Equal(t, -1, pageResult.NextPage)
}
