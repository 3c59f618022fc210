package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type FieldChange struct {
	From any
	To   any
}

// Changes maps a field name to its before and after values.
type Changes map[string]FieldChange

func (c Changes) Fields() []string {
	fields := make([]string, 0, len(c))
	for field := range c {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Describe renders one sentence per changed field, in field order.
func (c Changes) Describe(actor string) string {
	parts := make([]string, 0, len(c))
	for _, field := range c.Fields() {
		change := c[field]
		parts = append(parts, fmt.Sprintf("%s changed %s from %q to %q", actor, field, displayValue(change.From), displayValue(change.To)))
	}
	return strings.Join(parts, ", ")
}

func displayValue(v any) string {
	if v == nil {
		return "empty"
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "empty"
	}
	return s
}

func (c Changes) record(field string, from, to any) {
	if from == to {
		return
	}
	c[field] = FieldChange{From: from, To: to}
}

// ApplyProjectUpdate merges the provided fields into p and returns the result
// together with the fields whose value actually changed.
func ApplyProjectUpdate(p Project, in UpdateProjectInput) (Project, Changes) {
	changes := Changes{}
	if in.Title != nil {
		changes.record("title", p.Title, *in.Title)
		p.Title = *in.Title
	}
	if in.Description != nil {
		changes.record("description", p.Description, *in.Description)
		p.Description = *in.Description
	}
	if in.Key != nil {
		changes.record("key", p.Key, *in.Key)
		p.Key = *in.Key
	}
	return p, changes
}

// ApplyTaskUpdate merges the provided fields into t. Hierarchy fields, the
// creator and the owning project are never touched.
func ApplyTaskUpdate(t Task, in UpdateTaskInput) (Task, Changes) {
	changes := Changes{}
	if in.Title != nil {
		changes.record("title", t.Title, *in.Title)
		t.Title = *in.Title
	}
	if in.Description != nil {
		changes.record("description", t.Description, *in.Description)
		t.Description = *in.Description
	}
	if in.Type != nil {
		changes.record("type", string(t.Type), string(*in.Type))
		t.Type = *in.Type
	}
	if in.AssigneeSet {
		changes.record("assignee", optionalString(t.AssigneeID), optionalString(in.AssigneeID))
		t.AssigneeID = in.AssigneeID
	}
	if in.Status != nil {
		changes.record("status", string(t.Status), string(*in.Status))
		t.Status = *in.Status
	}
	if in.Priority != nil {
		changes.record("priority", string(t.Priority), string(*in.Priority))
		t.Priority = *in.Priority
	}
	if in.Progress != nil {
		changes.record("progress", t.Progress, *in.Progress)
		t.Progress = *in.Progress
	}
	if in.DueDateSet {
		changes.record("dueDate", optionalTime(t.DueDate), optionalTime(in.DueDate))
		t.DueDate = in.DueDate
	}
	return t, changes
}

func optionalString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339)
}
