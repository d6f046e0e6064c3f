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
)

// maxDueSoonLookahead bounds the reminder prefetch window. Individual users
// narrow it with their due_soon_days setting, which is capped at the same
// horizon so no configurable window can outrun the prefetch.
const maxDueSoonLookahead = domain.MaxDueSoonDays * 24 * time.Hour

type RecurringService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
	settingSvc    portssvc.SettingSvcFacade
	notifier      portssvc.Notifier
}

func NewRecurringService(
	recurringRepo portsrepo.RecurringRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	settingSvc portssvc.SettingSvcFacade,
	notifier portssvc.Notifier,
) *RecurringService {
	return &RecurringService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		txnRepo:       txnRepo,
		settingSvc:    settingSvc,
		notifier:      notifier,
	}
}

func (s *RecurringService) checkAccount(ctx context.Context, userID, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrForbidden
	}
	if !account.IsActive {
		return apperrors.NewBadRequestError(fmt.Sprintf("account %s is inactive", accountID))
	}
	return nil
}

func (s *RecurringService) checkCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *RecurringService) findOwnedRule(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error) {
	rule, err := s.recurringRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return rule, nil
}

func (s *RecurringService) CreateRule(ctx context.Context, userID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewBadRequestError("rule amount must be positive")
	}
	if err := s.checkAccount(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.Expense
	}

	now := time.Now()
	rule := domain.RecurringRule{
		RuleID:         uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Amount:         req.Amount,
		AccountID:      req.AccountID,
		CategoryID:     req.CategoryID,
		NextDue:        req.FirstDue,
		Frequency:      req.Frequency,
		IsSubscription: req.IsSubscription,
		IsActive:       true,
		Kind:           kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recurringRepo.SaveRule(ctx, rule); err != nil {
		logger.Error("Failed to save recurring rule in repository", slog.String("error", err.Error()), slog.String("rule_id", rule.RuleID))
		return nil, err
	}

	logger.Info("Recurring rule created", slog.String("rule_id", rule.RuleID), slog.String("frequency", string(rule.Frequency)))
	return &rule, nil
}

func (s *RecurringService) GetRule(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error) {
	return s.findOwnedRule(ctx, userID, ruleID)
}

func (s *RecurringService) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	rules, err := s.recurringRepo.ListRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		return []domain.RecurringRule{}, nil
	}
	return rules, nil
}

// UpdateRule edits the user-facing fields of a rule. The due date is owned
// by the recurrence engine and cannot be set here.
func (s *RecurringService) UpdateRule(ctx context.Context, userID, ruleID string, req dto.UpdateRecurringRuleRequest) (*domain.RecurringRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rule, err := s.findOwnedRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewBadRequestError("rule amount must be positive")
		}
		rule.Amount = *req.Amount
	}
	if req.AccountID != nil {
		if err := s.checkAccount(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		rule.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		rule.CategoryID = req.CategoryID
	}
	if req.Frequency != nil {
		if !req.Frequency.Valid() {
			return nil, apperrors.NewBadRequestError("unknown frequency")
		}
		rule.Frequency = *req.Frequency
	}
	if req.IsSubscription != nil {
		rule.IsSubscription = *req.IsSubscription
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateRule(ctx, *rule); err != nil {
		logger.Error("Failed to update recurring rule in repository", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		return nil, err
	}

	return rule, nil
}

func (s *RecurringService) DeleteRule(ctx context.Context, userID, ruleID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedRule(ctx, userID, ruleID); err != nil {
		return err
	}
	if err := s.recurringRepo.DeleteRule(ctx, ruleID); err != nil {
		logger.Error("Failed to delete recurring rule in repository", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		return err
	}
	logger.Info("Recurring rule deleted", slog.String("rule_id", ruleID))
	return nil
}

// ProcessDueRules is the daily recurrence evaluation. Each overdue active
// rule materializes exactly one transaction and advances its due date by
// one period; a rule that is several periods behind catches up across
// successive evaluations rather than flooding the ledger in one pass.
// Afterwards, rules approaching their due date inside the owner's reminder
// window produce a due-soon notification.
func (s *RecurringService) ProcessDueRules(ctx context.Context, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.recurringRepo.ListDueRules(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list due rules: %w", err)
	}

	var errs []error
	for _, rule := range due {
		if err := s.materializeRule(ctx, rule, now); err != nil {
			errs = append(errs, fmt.Errorf("rule %s: %w", rule.RuleID, err))
		}
	}

	if err := s.sendDueSoonReminders(ctx, now); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		logger.Warn("Recurrence evaluation finished with errors", slog.Int("error_count", len(errs)))
		return errors.Join(errs...)
	}

	logger.Info("Recurrence evaluation completed", slog.Int("materialized", len(due)))
	return nil
}

// materializeRule posts one transaction for an overdue rule and rolls the
// due date forward a single period. The transaction is dated at the missed
// due date, not at evaluation time.
func (s *RecurringService) materializeRule(ctx context.Context, rule domain.RecurringRule, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        rule.UserID,
		Description:   rule.Name,
		Amount:        rule.Amount,
		Kind:          rule.Kind,
		OccurredAt:    rule.NextDue,
		AccountID:     rule.AccountID,
		CategoryID:    rule.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rule.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rule.UserID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to materialize transaction: %w", err)
	}

	if _, err := s.txnRepo.RecalculateAccountBalance(ctx, rule.AccountID, rule.UserID, now); err != nil {
		logger.Error("Balance reconciliation failed after materialization, balance is stale until next write",
			slog.String("error", err.Error()), slog.String("account_id", rule.AccountID))
	}

	newDue := rule.Frequency.Next(rule.NextDue)
	if err := s.recurringRepo.UpdateRuleNextDue(ctx, rule.RuleID, newDue, now); err != nil {
		// The transaction is already posted. Failing to advance here would
		// repost it on the next evaluation, so this error must be loud.
		logger.Error("Failed to advance rule due date after materialization",
			slog.String("error", err.Error()), slog.String("rule_id", rule.RuleID))
		return fmt.Errorf("failed to advance due date: %w", err)
	}

	label := "Bill"
	if rule.IsSubscription {
		label = "Subscription"
	}
	req := domain.NotificationRequest{
		Title:    fmt.Sprintf("%s posted", label),
		Body:     fmt.Sprintf("%s (%s) was added to your transactions.", rule.Name, rule.Amount.String()),
		Category: domain.RecurringNotification,
	}
	if err := s.notifier.Notify(ctx, rule.UserID, req); err != nil {
		logger.Error("Failed to send materialization notification", slog.String("error", err.Error()), slog.String("rule_id", rule.RuleID))
	}

	logger.Info("Recurring rule materialized",
		slog.String("rule_id", rule.RuleID),
		slog.String("transaction_id", txn.TransactionID),
		slog.Time("next_due", newDue))
	return nil
}

// sendDueSoonReminders notifies owners of rules that fall due within their
// configured due_soon_days window. Rules are prefetched with the widest
// window and filtered per user.
func (s *RecurringService) sendDueSoonReminders(ctx context.Context, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	upcoming, err := s.recurringRepo.ListRulesDueBetween(ctx, now, now.Add(maxDueSoonLookahead))
	if err != nil {
		return fmt.Errorf("failed to list upcoming rules: %w", err)
	}

	windows := map[string]time.Duration{}
	for _, rule := range upcoming {
		window, ok := windows[rule.UserID]
		if !ok {
			window = time.Duration(s.settingSvc.DueSoonDays(ctx, rule.UserID)) * 24 * time.Hour
			windows[rule.UserID] = window
		}

		if !rule.IsDueSoon(now, window) {
			continue
		}

		req := domain.NotificationRequest{
			Title:    "Upcoming bill",
			Body:     fmt.Sprintf("%s (%s) is due on %s.", rule.Name, rule.Amount.String(), rule.NextDue.Format("Jan 2")),
			Category: domain.RecurringNotification,
		}
		if err := s.notifier.Notify(ctx, rule.UserID, req); err != nil {
			logger.Error("Failed to send due-soon reminder", slog.String("error", err.Error()), slog.String("rule_id", rule.RuleID))
		}
	}
	return nil
}
