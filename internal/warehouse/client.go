package warehouse

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Error taxonomy shared by every gateway implementation. Neither is
// retryable at this layer; callers surface one generic failure and wait for
// the next user-triggered cycle.
var (
	// ErrUpstreamUnavailable means the network call to the warehouse could
	// not complete.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamError means the warehouse reported a query failure, or the
	// proxy returned a non-2xx status or success=false.
	ErrUpstreamError = errors.New("upstream query failed")
)

// DefaultLocation is the warehouse execution-region hint.
const DefaultLocation = "asia-south1"

// DefaultRowLimit caps the fixed query's result set.
const DefaultRowLimit = 10

// Options configures the warehouse client. ProjectID and TableRef are
// required; TableRef is the fully-qualified project.dataset.table name.
type Options struct {
	ProjectID       string
	CredentialsPath string
	TableRef        string
	Location        string
	RowLimit        int
}

// Client executes the dashboard's one fixed, parameterless query against
// BigQuery.
type Client struct {
	bq       *bigquery.Client
	tableRef string
	location string
	rowLimit int
}

// NewClient creates a warehouse client. When a credentials path is set it is
// passed to the SDK; otherwise Application Default Credentials apply.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.ProjectID == "" || opts.TableRef == "" {
		return nil, fmt.Errorf("NewClient: project ID and table ref are required")
	}
	if opts.Location == "" {
		opts.Location = DefaultLocation
	}
	if opts.RowLimit <= 0 {
		opts.RowLimit = DefaultRowLimit
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsPath))
	}

	bq, err := bigquery.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("NewClient: bigquery client: %w: %v", ErrUpstreamUnavailable, err)
	}

	return &Client{
		bq:       bq,
		tableRef: opts.TableRef,
		location: opts.Location,
		rowLimit: opts.RowLimit,
	}, nil
}

// FetchRows runs the fixed query and returns whatever rows it yields. The
// pipeline must not assume any particular count; the limit only caps the
// result set. No side effects beyond the outbound call.
func (c *Client) FetchRows(ctx context.Context) ([]pipeline.RawRow, error) {
	q := c.bq.Query(fmt.Sprintf("SELECT * FROM `%s` LIMIT %d", c.tableRef, c.rowLimit))
	q.Location = c.location

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchRows: query read: %w: %v", ErrUpstreamError, err)
	}

	var rows []pipeline.RawRow
	for {
		var vals map[string]bigquery.Value
		err := it.Next(&vals)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("FetchRows: iter next: %w: %v", ErrUpstreamError, err)
		}

		row := make(pipeline.RawRow, len(vals))
		for k, v := range vals {
			row[k] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	return c.bq.Close()
}
