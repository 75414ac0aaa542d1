// Package loop runs a single local game: an in-process lobby server plus one
// client bound to the given reader and writer.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/grabdiamond/internal/loop/client"
	"github.com/tomz197/grabdiamond/internal/loop/server"
)

// Run starts a local lobby and plays until the client quits.
func Run(r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(opts.Logger)
	go srv.Run(ctx)

	return client.NewClient(srv, r, w, opts).Run()
}
