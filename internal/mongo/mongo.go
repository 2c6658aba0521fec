package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	ErrNotReady          = errors.New("mongo: server did not become ready")
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
)

type Client struct {
	*mongo.Client
}

// New connects to MongoDB and pings the primary, retrying up to attempts times.
func New(ctx context.Context, uri string, attempts int, interval time.Duration) (*Client, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(uri).
			SetConnectTimeout(10 * time.Second).
			SetRetryWrites(true).
			SetRetryReads(true),
	)
	if err != nil {
		return nil, errors.Join(ErrNotReady, err)
	}

	for i := range attempts {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx, nil)
		cancel()

		if err == nil {
			return &Client{Client: client}, nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(interval):
		}
	}

	_ = client.Disconnect(context.Background())
	return nil, errors.Join(ErrNotReady, err)
}

func (c *Client) Healthcheck(ctx context.Context) error {
	if err := c.Ping(ctx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
