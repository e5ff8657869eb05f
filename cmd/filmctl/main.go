// filmctl обращается к FilmInterService по gRPC.
//
//	filmctl popular -n 5
//	filmctl recommend -user 1 -limit 5
//	filmctl film -id 3
//	filmctl exists -film 3 | -user 1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"film-service/internal/clients"
	"film-service/internal/config"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: filmctl [-addr host:port] <popular|recommend|film|exists> [flags]")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	global := flag.NewFlagSet("filmctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	addr := global.String("addr", cfg.GRPCAddr, "FilmInterService gRPC address")
	timeout := global.Duration("timeout", 10*time.Second, "overall command timeout")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		usage(stderr)
		return 2
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	client, err := clients.NewFilmServiceGRPCClient(*addr, clients.DefaultBreakerConfig(), logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := dispatch(ctx, client, global.Arg(0), global.Args()[1:], stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, client clients.FilmServiceClient, cmd string, args []string, stderr io.Writer) (any, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd {
	case "popular":
		n := fs.Int("n", 0, "number of films (0 = server default)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return client.GetPopularFilms(ctx, *n)

	case "recommend":
		user := fs.Int64("user", 0, "user id")
		limit := fs.Int("limit", 0, "max films (0 = server default)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if *user <= 0 {
			return nil, fmt.Errorf("recommend: -user is required")
		}
		return client.GetRecommendations(ctx, *user, *limit)

	case "film":
		id := fs.Int64("id", 0, "film id")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if *id <= 0 {
			return nil, fmt.Errorf("film: -id is required")
		}
		return client.GetFilmInfo(ctx, *id)

	case "exists":
		film := fs.Int64("film", 0, "film id")
		user := fs.Int64("user", 0, "user id")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		switch {
		case *film > 0:
			ok, err := client.CheckFilmExists(ctx, *film)
			return map[string]bool{"exists": ok}, err
		case *user > 0:
			ok, err := client.CheckUserExists(ctx, *user)
			return map[string]bool{"exists": ok}, err
		}
		return nil, fmt.Errorf("exists: -film or -user is required")
	}

	usage(stderr)
	return nil, fmt.Errorf("unknown command %q", cmd)
}
