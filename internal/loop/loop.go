// Package loop hosts game sessions on terminals: the per-frame
// Input -> Update -> Draw loop, the screens around a game and the hub that
// tracks every connected client of a server.
package loop

import (
	"bufio"
	"context"
	"io"
)

// Run plays a single local game on r and w until the player quits.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	client, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return client.Run(ctx)
}
