package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var (
	ErrInvalidURL        = errors.New("redis: invalid connection url")
	ErrNotReady          = errors.New("redis: server did not become ready")
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)

type Client struct {
	*goredis.Client
}

// New parses a redis:// URL and pings the server, retrying up to attempts times.
func New(ctx context.Context, url string, attempts int, interval time.Duration) (*Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	client := goredis.NewClient(opts)

	for i := range attempts {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			return &Client{Client: client}, nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(interval):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrNotReady, err)
}

func (c *Client) Healthcheck(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
