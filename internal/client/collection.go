package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudsec-io/cloudsecure/internal/constants"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
)

// Job poll statuses. The server answers with one of two success shapes:
// "completed", where the result field is itself the collection href, and
// "done", where the result is an object whose href field carries it. Both
// must be handled.
const (
	jobStatusFailed    = "failed"
	jobStatusCompleted = "completed"
	jobStatusDone      = "done"
)

// jobStatus is the polled job body.
type jobStatus struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

// jobResult is the object-shaped result carried by "done" and "failed"
// jobs.
type jobResult struct {
	Href    string `json:"href"`
	Message string `json:"message"`
}

// GetCollection implements cloudsecure.Client.GetCollection: request with
// Prefer: respond-async, poll the job the Location header points at until
// it terminates, then fetch the resolved collection href.
func (c *Client) GetCollection(ctx context.Context, endpoint string, opts *cloudsecure.RequestOptions) ([]byte, error) {
	callOpts := cloneOptions(opts)
	if callOpts.Headers == nil {
		callOpts.Headers = make(map[string]string, 1)
	}

	callOpts.Headers["Prefer"] = constants.HeaderPreferRespondAsync

	resp, err := c.transport.Get(ctx, endpoint, callOpts)
	if err != nil {
		return nil, fmt.Errorf("requesting collection: %w", err)
	}

	location := resp.Headers.Get("Location")
	if location == "" {
		return nil, &cloudsecure.ProtocolError{Message: "async collection response missing Location header"}
	}

	retryAfter := resp.Headers.Get("Retry-After")

	waitSeconds, err := strconv.ParseFloat(retryAfter, 64)
	if err != nil {
		return nil, &cloudsecure.ProtocolError{Message: "async collection response missing numeric Retry-After header"}
	}

	href, err := c.pollJob(ctx, location, time.Duration(waitSeconds*float64(time.Second)))
	if err != nil {
		return nil, err
	}

	final, err := c.transport.Get(ctx, href, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching collection result: %w", err)
	}

	return final.Body, nil
}

// pollJob sleeps and re-reads the job until it terminates, growing the wait
// interval by the backoff multiplier after every sleep. There is no attempt
// cap: a job that stays pending polls until the context ends.
func (c *Client) pollJob(ctx context.Context, location string, wait time.Duration) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("polling async job: %w", ctx.Err())
		case <-time.After(wait):
		}

		wait = time.Duration(float64(wait) * constants.PollBackoffMultiplier)

		resp, err := c.transport.Get(ctx, location, nil)
		if err != nil {
			return "", fmt.Errorf("polling async job: %w", err)
		}

		var job jobStatus

		err = json.Unmarshal(resp.Body, &job)
		if err != nil {
			return "", &cloudsecure.ProtocolError{Message: "invalid async job body: " + err.Error()}
		}

		switch job.Status {
		case jobStatusFailed:
			var result jobResult

			_ = json.Unmarshal(job.Result, &result)

			return "", &cloudsecure.ProtocolError{Message: "async collection job failed: " + result.Message}
		case jobStatusCompleted:
			var href string

			err := json.Unmarshal(job.Result, &href)
			if err != nil {
				return "", &cloudsecure.ProtocolError{Message: "completed job result is not an href"}
			}

			return href, nil
		case jobStatusDone:
			var result jobResult

			err := json.Unmarshal(job.Result, &result)
			if err != nil || result.Href == "" {
				return "", &cloudsecure.ProtocolError{Message: "done job result carries no href"}
			}

			return result.Href, nil
		}
	}
}
