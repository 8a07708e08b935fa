// Package erpnext pushes computed totals to an ERPNext-compatible HR system
// as Timesheet documents, one per employee.
package erpnext

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"punchclock/internal/domain"
)

// Client implements ports.Sink against the ERPNext REST API.
type Client struct {
	baseURL string
	token   string
	company string
	forDate string // YYYY-MM-DD the timesheet rows are attributed to
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, token, company, forDate string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		company: company,
		forDate: forDate,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type timeLog struct {
	ActivityType string  `json:"activity_type"`
	FromTime     string  `json:"from_time"`
	ToTime       string  `json:"to_time"`
	Hours        float64 `json:"hours"`
}

type timesheetDoc struct {
	Company  string    `json:"company"`
	Employee string    `json:"employee"`
	TimeLogs []timeLog `json:"time_logs"`
}

// SyncSummaries posts one Timesheet per employee. A rejected document is
// logged and skipped so one bad employee record cannot abort the batch; an
// error is returned only when every post failed or the server is
// unreachable.
func (c *Client) SyncSummaries(ctx context.Context, summaries []domain.EmployeeSummary) error {
	if c.token == "" {
		return errors.New("erpnext: missing api token")
	}
	var failed int
	var lastErr error
	for _, s := range summaries {
		if err := c.postTimesheet(ctx, s); err != nil {
			failed++
			lastErr = err
			c.log.Warn("timesheet rejected",
				slog.String("employee", s.Code), slog.String("error", err.Error()))
		}
	}
	if failed == len(summaries) && failed > 0 {
		return fmt.Errorf("erpnext: all %d timesheets failed: %w", failed, lastErr)
	}
	c.log.Info("erpnext sink posted timesheets",
		slog.Int("count", len(summaries)-failed), slog.Int("failed", failed))
	return nil
}

func (c *Client) postTimesheet(ctx context.Context, s domain.EmployeeSummary) error {
	doc := timesheetDoc{
		Company:  c.company,
		Employee: s.Code,
		TimeLogs: []timeLog{{
			ActivityType: "Working Time",
			FromTime:     c.forDate,
			ToTime:       c.forDate,
			Hours:        domain.MinutesToDecimalHours(s.TotalMinutes),
		}},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/resource/Timesheet", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("erpnext: unexpected status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
