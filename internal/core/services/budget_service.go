package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pace alert thresholds, in percent. A category draws a pace alert when
// spending has crossed paceSpentThreshold and leads elapsed time by more
// than paceLeadMargin points. The reminder at reminderThreshold is a
// separate, opt-in signal.
const (
	paceSpentThreshold = 75
	paceLeadMargin     = 20
	reminderThreshold  = 80
)

type BudgetService struct {
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	notifier     portssvc.Notifier
}

func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	notifier portssvc.Notifier,
) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, categoryRepo: categoryRepo, txnRepo: txnRepo, notifier: notifier}
}

func (s *BudgetService) findOwnedBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return budget, nil
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	budget := domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		Month:    req.Month,
		Year:     req.Year,
		Note:     req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		}
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.Int("month", budget.Month), slog.Int("year", budget.Year))
	return &budget, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, []domain.BudgetCategory, error) {
	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, nil, err
	}
	links, err := s.budgetRepo.ListBudgetCategories(ctx, budgetID)
	if err != nil {
		return nil, nil, err
	}
	if links == nil {
		links = []domain.BudgetCategory{}
	}
	return budget, links, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, userID string, limit, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Note != nil {
		budget.Note = *req.Note
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return err
	}
	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

func (s *BudgetService) AddBudgetCategory(ctx context.Context, userID, budgetID string, req dto.AddBudgetCategoryRequest) (*domain.BudgetCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if category.Kind != domain.ExpenseCategory {
		return nil, apperrors.NewBadRequestError("only expense categories can be budgeted")
	}
	if req.Planned.IsNegative() {
		return nil, apperrors.NewBadRequestError("planned amount must not be negative")
	}

	now := time.Now()
	link := domain.BudgetCategory{
		BudgetCategoryID: uuid.NewString(),
		BudgetID:         budgetID,
		CategoryID:       req.CategoryID,
		Planned:          req.Planned,
		ReminderEnabled:  req.ReminderEnabled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudgetCategory(ctx, link); err != nil {
		logger.Error("Failed to save budget category in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	return &link, nil
}

func (s *BudgetService) UpdateBudgetCategory(ctx context.Context, userID, budgetCategoryID string, req dto.UpdateBudgetCategoryRequest) (*domain.BudgetCategory, error) {
	link, err := s.budgetRepo.FindBudgetCategoryByID(ctx, budgetCategoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findOwnedBudget(ctx, userID, link.BudgetID); err != nil {
		return nil, err
	}

	if req.Planned != nil {
		if req.Planned.IsNegative() {
			return nil, apperrors.NewBadRequestError("planned amount must not be negative")
		}
		link.Planned = *req.Planned
	}
	if req.ReminderEnabled != nil {
		link.ReminderEnabled = *req.ReminderEnabled
	}
	link.LastUpdatedAt = time.Now()
	link.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudgetCategory(ctx, *link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *BudgetService) RemoveBudgetCategory(ctx context.Context, userID, budgetCategoryID string) error {
	link, err := s.budgetRepo.FindBudgetCategoryByID(ctx, budgetCategoryID)
	if err != nil {
		return err
	}
	if _, err := s.findOwnedBudget(ctx, userID, link.BudgetID); err != nil {
		return err
	}
	return s.budgetRepo.DeleteBudgetCategory(ctx, budgetCategoryID)
}

// EvaluatePace runs the scheduled pace check over every budget covering the
// month of now. For each budgeted category it compares the share of plan
// already spent against the share of the month already elapsed, and sends a
// pace alert when spending leads time by more than the margin. A separate
// reminder fires once spending crosses reminderThreshold, gated by the
// link's ReminderEnabled flag. One failing category does not stop the rest.
func (s *BudgetService) EvaluatePace(ctx context.Context, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	month := int(now.Month())
	year := now.Year()
	periodStart := time.Date(year, now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodEnd := periodStart.AddDate(0, 1, 0)
	daysInMonth := periodEnd.Sub(periodStart).Hours() / 24

	timePct := decimal.NewFromInt(int64(now.Day())).
		Div(decimal.NewFromFloat(daysInMonth)).
		Mul(decimal.NewFromInt(100))

	budgets, err := s.budgetRepo.ListBudgetsForPeriod(ctx, month, year)
	if err != nil {
		return fmt.Errorf("failed to list budgets for pace evaluation: %w", err)
	}

	var errs []error
	for _, budget := range budgets {
		links, err := s.budgetRepo.ListBudgetCategories(ctx, budget.BudgetID)
		if err != nil {
			errs = append(errs, fmt.Errorf("budget %s: %w", budget.BudgetID, err))
			continue
		}

		for _, link := range links {
			if !link.Planned.IsPositive() {
				continue
			}

			spent, err := s.txnRepo.SumExpensesByCategory(ctx, budget.UserID, link.CategoryID, periodStart, periodEnd)
			if err != nil {
				errs = append(errs, fmt.Errorf("budget category %s: %w", link.BudgetCategoryID, err))
				continue
			}

			spentPct := spent.Div(link.Planned).Mul(decimal.NewFromInt(100))

			if spentPct.GreaterThanOrEqual(decimal.NewFromInt(paceSpentThreshold)) &&
				spentPct.GreaterThan(timePct.Add(decimal.NewFromInt(paceLeadMargin))) {
				s.notifyPace(ctx, budget, link, spentPct, timePct)
			}

			if link.ReminderEnabled && spentPct.GreaterThanOrEqual(decimal.NewFromInt(reminderThreshold)) {
				s.notifyReminder(ctx, budget, link, spentPct)
			}
		}
	}

	if len(errs) > 0 {
		logger.Warn("Pace evaluation finished with errors", slog.Int("error_count", len(errs)))
		return errors.Join(errs...)
	}
	return nil
}

func (s *BudgetService) notifyPace(ctx context.Context, budget domain.Budget, link domain.BudgetCategory, spentPct, timePct decimal.Decimal) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categoryName := link.CategoryID
	if category, err := s.categoryRepo.FindCategoryByID(ctx, link.CategoryID); err == nil {
		categoryName = category.Name
	}

	req := domain.NotificationRequest{
		Title: "Spending faster than planned",
		Body: fmt.Sprintf("You have used %s%% of your %s budget with %s%% of the month gone.",
			spentPct.Round(0).String(), categoryName, timePct.Round(0).String()),
		Category: domain.BudgetNotification,
	}
	if err := s.notifier.Notify(ctx, budget.UserID, req); err != nil {
		logger.Error("Failed to send pace alert", slog.String("error", err.Error()), slog.String("budget_category_id", link.BudgetCategoryID))
	}
}

func (s *BudgetService) notifyReminder(ctx context.Context, budget domain.Budget, link domain.BudgetCategory, spentPct decimal.Decimal) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categoryName := link.CategoryID
	if category, err := s.categoryRepo.FindCategoryByID(ctx, link.CategoryID); err == nil {
		categoryName = category.Name
	}

	req := domain.NotificationRequest{
		Title: "Budget almost used up",
		Body: fmt.Sprintf("You have used %s%% of your %s budget for this month.",
			spentPct.Round(0).String(), categoryName),
		Category: domain.BudgetNotification,
	}
	if err := s.notifier.Notify(ctx, budget.UserID, req); err != nil {
		logger.Error("Failed to send budget reminder", slog.String("error", err.Error()), slog.String("budget_category_id", link.BudgetCategoryID))
	}
}
