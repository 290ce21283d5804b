package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Ping calls the API root and returns its greeting
func (c *Client) Ping(ctx context.Context) (string, error) {
	raw, err := c.Do(ctx, http.MethodGet, constants.PathRoot, nil)
	if err != nil {
		return "", err
	}
	var res models.MessageResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return res.Message, nil
}

// Status fetches the session and gamification status
func (c *Client) Status(ctx context.Context) (models.Status, error) {
	raw, err := c.Do(ctx, http.MethodGet, constants.PathStatus, nil)
	if err != nil {
		return models.Status{}, err
	}
	var status models.Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return models.Status{}, fmt.Errorf("%w: status: %v", ErrMalformedResponse, err)
	}
	return status, nil
}

// Habits fetches the authoritative habit list. A JSON null decodes to an empty list.
func (c *Client) Habits(ctx context.Context) ([]models.Habit, error) {
	raw, err := c.Do(ctx, http.MethodGet, constants.PathHabits, nil)
	if err != nil {
		return nil, err
	}
	var habits []models.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		return nil, fmt.Errorf("%w: habits: %v", ErrMalformedResponse, err)
	}
	return habits, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (Outcome, error) {
	return c.mutate(ctx, OpRegister, http.MethodPost, constants.PathRegister, creds)
}

// Login starts a server session; the cookie lands in the client's jar
func (c *Client) Login(ctx context.Context, creds models.Credentials) (Outcome, error) {
	return c.mutate(ctx, OpLogin, http.MethodPost, constants.PathLogin, creds)
}

// CreateHabit adds a habit by name
func (c *Client) CreateHabit(ctx context.Context, name string) (Outcome, error) {
	return c.mutate(ctx, OpCreateHabit, http.MethodPost, constants.PathHabits, models.CreateHabitRequest{Name: name})
}

// DeleteHabit removes a habit and its history
func (c *Client) DeleteHabit(ctx context.Context, id int64) (Outcome, error) {
	path := constants.PathHabits + "/" + strconv.FormatInt(id, 10)
	return c.mutate(ctx, OpDeleteHabit, http.MethodDelete, path, nil)
}

// LogHabit checks a habit off for today
func (c *Client) LogHabit(ctx context.Context, id int64) (Outcome, error) {
	return c.mutate(ctx, OpLogHabit, http.MethodPost, constants.PathLog, models.LogHabitRequest{HabitID: id})
}

// LogSleep submits a sleep session
func (c *Client) LogSleep(ctx context.Context, entry models.SleepLog) (Outcome, error) {
	return c.mutate(ctx, OpLogSleep, http.MethodPost, constants.PathSleep, entry)
}

func (c *Client) mutate(ctx context.Context, op Op, method, path string, body any) (Outcome, error) {
	raw, err := c.Do(ctx, method, path, body)
	if err != nil {
		return Outcome{Op: op}, err
	}
	var res models.MessageResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return Outcome{Op: op}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
	}
	return Outcome{
		Op:       op,
		Kind:     Classify(op, res.Message),
		Message:  res.Message,
		Response: res,
	}, nil
}
