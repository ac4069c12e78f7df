package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/cleanhtml/internal/logger"
	"github.com/jmylchreest/cleanhtml/pkg/fetcher"
)

// inputSource describes where input markup came from.
type inputSource struct {
	Name  string
	IsURL bool
}

func sourceFromArgs(args []string) inputSource {
	if len(args) == 0 || args[0] == "-" {
		return inputSource{Name: "-"}
	}
	return inputSource{Name: args[0], IsURL: isURL(args[0])}
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// readInput loads markup from stdin, a file or a URL and returns it as
// UTF-8. maxBytes of 0 means unlimited.
func readInput(ctx context.Context, src inputSource, maxBytes int, fetchOpts fetcher.StaticConfig) (string, error) {
	if src.IsURL {
		f := fetcher.NewStatic(fetchOpts)
		defer f.Close()

		content, err := f.Fetch(ctx, src.Name, fetcher.Options{})
		if err != nil {
			return "", err
		}
		logger.Debug("page fetched", "url", src.Name, "status", content.StatusCode, "title", content.Title)
		if err := checkSize(len(content.HTML), maxBytes); err != nil {
			return "", err
		}
		return content.HTML, nil
	}

	var r io.Reader = os.Stdin
	if src.Name != "-" {
		file, err := os.Open(src.Name)
		if err != nil {
			return "", err
		}
		defer file.Close()
		r = file
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, int64(maxBytes)+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src.Name, err)
	}
	if err := checkSize(len(data), maxBytes); err != nil {
		return "", err
	}
	return fetcher.Decode(data, "")
}

func checkSize(n, maxBytes int) error {
	if maxBytes > 0 && n > maxBytes {
		return fmt.Errorf("input exceeds max-size of %s", humanize.Bytes(uint64(maxBytes)))
	}
	return nil
}

// writeOutput writes s followed by a newline to path, or stdout when path is
// empty or "-".
func writeOutput(path, s string) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
