package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tanomu-app/tanomu/internal/quota/domain"
)

// Client calls a remote quota gate over its HTTP transport. It implements
// domain.Gate, so call sites cannot tell a remote gate from an in-process
// one. Calls are subject to the client timeout; a timed-out consume has an
// unknown outcome and callers must treat it as a rejection.
type Client struct {
	baseURL string
	name    string
	http    *http.Client
}

func NewClient(baseURL, name string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Consume(ctx context.Context, in domain.ConsumeInput) (domain.QuotaRecord, error) {
	return c.post(ctx, "consume", in)
}

func (c *Client) ForceReset(ctx context.Context, in domain.ConsumeInput) (domain.QuotaRecord, error) {
	return c.post(ctx, "force-reset", in)
}

func (c *Client) Status(ctx context.Context) (domain.QuotaRecord, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("status"), nil)
	if err != nil {
		return domain.QuotaRecord{}, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.QuotaRecord{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.QuotaRecord{}, false, fmt.Errorf("quota gate status: unexpected status %d", resp.StatusCode)
	}

	var body statusBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.QuotaRecord{}, false, err
	}
	if body.DayKey == nil || *body.DayKey == "" {
		return domain.QuotaRecord{}, false, nil
	}

	record := domain.QuotaRecord{
		DayKey: *body.DayKey,
		Count:  body.Count,
		Limit:  body.Limit,
		State:  body.State,
	}
	if body.ResumeAt != nil {
		record.ResumeAt = *body.ResumeAt
	}
	return record, true, nil
}

func (c *Client) post(ctx context.Context, op string, in domain.ConsumeInput) (domain.QuotaRecord, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return domain.QuotaRecord{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(op), bytes.NewReader(payload))
	if err != nil {
		return domain.QuotaRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.QuotaRecord{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var record domain.QuotaRecord
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return domain.QuotaRecord{}, err
		}
		return record, nil
	case http.StatusBadRequest:
		return domain.QuotaRecord{}, domain.ErrInvalidInput
	default:
		return domain.QuotaRecord{}, fmt.Errorf("quota gate %s: unexpected status %d", op, resp.StatusCode)
	}
}

func (c *Client) endpoint(op string) string {
	return fmt.Sprintf("%s/internal/quota/%s/%s", c.baseURL, c.name, op)
}
