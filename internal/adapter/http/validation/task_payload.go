package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"advanced-todo/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidTaskID      = errors.New("invalid task id")
)

// DecodePayload reads a JSON object body field by field so each field's JSON
// type can be checked. An empty body is treated as an empty object.
func DecodePayload(body []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return raw, nil
}

func ParseTaskID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTaskID
	}
	return id, nil
}

// BuildCreateTaskInput requires a string title with visible characters.
// A missing or non-string description becomes "".
func BuildCreateTaskInput(raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	title, ok := stringField(raw, "title")
	if !ok || !domain.IsNonEmptyTitle(title) {
		return domain.CreateTaskInput{}, domain.ErrInvalidTitle
	}

	description, _ := stringField(raw, "description")

	return domain.CreateTaskInput{
		Title:       title,
		Description: description,
	}, nil
}

// BuildUpdateTaskInput keeps only the fields sent as JSON strings; values of
// any other type are ignored. Content rules are enforced by the service.
func BuildUpdateTaskInput(raw map[string]json.RawMessage) domain.UpdateTaskInput {
	var input domain.UpdateTaskInput

	if title, ok := stringField(raw, "title"); ok {
		input.Title = &title
	}
	if description, ok := stringField(raw, "description"); ok {
		input.Description = &description
	}
	if status, ok := stringField(raw, "status"); ok {
		value := domain.TaskStatus(status)
		input.Status = &value
	}

	return input
}

func stringField(raw map[string]json.RawMessage, field string) (string, bool) {
	value, ok := raw[field]
	if !ok || isJSONNull(value) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return s, true
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
