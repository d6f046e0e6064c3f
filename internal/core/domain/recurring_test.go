package domain_test

import (
	"testing"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFrequencyNext(t *testing.T) {
	t.Run("weekly advances exactly seven days", func(t *testing.T) {
		due := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), domain.Weekly.Next(due))
	})

	t.Run("monthly advances one calendar month", func(t *testing.T) {
		due := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), domain.Monthly.Next(due))
	})

	t.Run("monthly normalizes past month end", func(t *testing.T) {
		// Jan 31 + 1 month lands in March via AddDate normalization.
		due := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), domain.Monthly.Next(due))
	})

	t.Run("quarterly advances three months", func(t *testing.T) {
		due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), domain.Quarterly.Next(due))
	})

	t.Run("yearly advances one year", func(t *testing.T) {
		due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), domain.Yearly.Next(due))
	})

	t.Run("long overdue rule still advances a single period", func(t *testing.T) {
		// A rule 40 days behind catches up one evaluation at a time.
		due := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
		next := domain.Monthly.Next(due)
		assert.Equal(t, time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), next)

		now := due.AddDate(0, 0, 40)
		rule := domain.RecurringRule{IsActive: true, NextDue: next}
		assert.True(t, rule.IsDue(now), "advanced rule should still be due, to be caught up next pass")
	})
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, domain.Weekly.Valid())
	assert.True(t, domain.Monthly.Valid())
	assert.True(t, domain.Quarterly.Valid())
	assert.True(t, domain.Yearly.Valid())
	assert.False(t, domain.Frequency("DAILY").Valid())
	assert.False(t, domain.Frequency("").Valid())
}

func TestRecurringRuleIsDue(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("due at exactly now", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now}
		assert.True(t, rule.IsDue(now))
	})

	t.Run("overdue", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now.AddDate(0, 0, -3)}
		assert.True(t, rule.IsDue(now))
	})

	t.Run("future not due", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now.Add(time.Hour)}
		assert.False(t, rule.IsDue(now))
	})

	t.Run("inactive never due", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: false, NextDue: now.AddDate(0, 0, -3)}
		assert.False(t, rule.IsDue(now))
	})
}

func TestRecurringRuleIsDueSoon(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	t.Run("inside window", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now.AddDate(0, 0, 3)}
		assert.True(t, rule.IsDueSoon(now, window))
	})

	t.Run("at window edge", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now.Add(window)}
		assert.True(t, rule.IsDueSoon(now, window))
	})

	t.Run("beyond window", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now.AddDate(0, 0, 10)}
		assert.False(t, rule.IsDueSoon(now, window))
	})

	t.Run("already due is not due soon", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: true, NextDue: now}
		assert.False(t, rule.IsDueSoon(now, window))
	})

	t.Run("inactive never due soon", func(t *testing.T) {
		rule := domain.RecurringRule{IsActive: false, NextDue: now.AddDate(0, 0, 3)}
		assert.False(t, rule.IsDueSoon(now, window))
	})
}
