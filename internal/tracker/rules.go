package tracker

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/store"
)

// RuleBook persists the status automation rules
type RuleBook struct {
	kv store.KV
}

// NewRuleBook creates a RuleBook over kv
func NewRuleBook(kv store.KV) *RuleBook {
	return &RuleBook{kv: kv}
}

// Load returns the stored rules. The first load persists the defaults. Stored
// rules that fail validation are dropped with a log line.
func (r *RuleBook) Load(ctx context.Context) ([]automation.StatusRule, error) {
	return loadRules(ctx, r.kv, true)
}

// Save validates and stores the complete rule set
func (r *RuleBook) Save(ctx context.Context, rules []automation.StatusRule) error {
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return &ValidationError{Message: "invalid rule", Cause: err}
		}
		if _, dup := seen[rule.ID]; dup {
			return &ValidationError{Message: fmt.Sprintf("duplicate rule id %s", rule.ID)}
		}
		seen[rule.ID] = struct{}{}
	}
	if rules == nil {
		rules = []automation.StatusRule{}
	}
	return store.SetJSON(ctx, r.kv, store.KeyStatusRules, rules)
}

// SetActive enables or disables one rule
func (r *RuleBook) SetActive(ctx context.Context, id string, active bool) error {
	rules, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i := range rules {
		if rules[i].ID == id {
			rules[i].Active = active
			return r.Save(ctx, rules)
		}
	}
	return &NotFoundError{Kind: "rule", ID: id}
}

// Reset replaces the stored rules with the defaults
func (r *RuleBook) Reset(ctx context.Context) ([]automation.StatusRule, error) {
	rules := automation.DefaultRules()
	if err := r.Save(ctx, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func loadRules(ctx context.Context, kv store.KV, persistDefaults bool) ([]automation.StatusRule, error) {
	var stored []automation.StatusRule
	found, err := store.GetJSON(ctx, kv, store.KeyStatusRules, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		rules := automation.DefaultRules()
		if persistDefaults {
			if err := store.SetJSON(ctx, kv, store.KeyStatusRules, rules); err != nil {
				return nil, err
			}
		}
		return rules, nil
	}

	rules := make([]automation.StatusRule, 0, len(stored))
	for _, rule := range stored {
		if err := rule.Validate(); err != nil {
			log.Printf("[tracker] skipping stored rule: %v", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
