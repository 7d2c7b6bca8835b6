package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash/v2"
	"github.com/yosssi/gohtml"
	"golang.org/x/sync/errgroup"

	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/pool"
)

// compressExts are the outputs that get a .br sibling.
var compressExts = map[string]bool{
	".html": true,
	".xml":  true,
	".xsl":  true,
	".css":  true,
	".js":   true,
	".svg":  true,
	".json": true,
	".txt":  true,
}

type writeStats struct {
	written, skipped, removed int
}

func prettify(files map[string][]byte) {
	for rel, data := range files {
		if path.Ext(rel) == ".html" {
			files[rel] = gohtml.FormatBytes(data)
		}
	}
}

// write stores files under the output dir, skipping those whose hash matches
// the previous manifest, and removes the outputs the previous build wrote that
// this one did not produce.
func (b *Builder) write(ctx context.Context, buildID string, files map[string][]byte) (writeStats, error) {
	var stats writeStats

	manifestPath := filepath.Join(b.opts.CacheDir, manifestName)
	prev, err := loadManifest(manifestPath)
	if err != nil {
		b.logger.Warn("ignoring unreadable manifest", logging.Err(err))
		prev = newManifest()
	}
	next := newManifest()
	next.BuildID = buildID
	next.Compress = b.opts.Compress
	compressChanged := prev.Compress != b.opts.Compress

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for rel, data := range files {
		sum := contentSum(data, buildID)
		next.Files[rel] = sum
		dst := b.dest(rel)

		if !compressChanged && prev.Files[rel] == sum && exists(dst) {
			stats.skipped++
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.writeOne(rel, dst, data); err != nil {
				return err
			}
			mu.Lock()
			stats.written++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for rel := range prev.Files {
		dst := b.dest(rel)
		if _, ok := files[rel]; !ok {
			if err := removeOutput(dst); err != nil {
				return stats, err
			}
			stats.removed++
			b.logger.Debug("removed stale output", logging.Path(rel))
			continue
		}
		if prev.Compress && !b.opts.Compress {
			if err := removeOutput(dst + ".br"); err != nil {
				return stats, err
			}
		}
	}

	if err := next.save(manifestPath); err != nil {
		return stats, err
	}
	return stats, nil
}

// contentSum hashes data with every occurrence of the build id left out, so
// a page whose only change is the stamped id is not rewritten.
func contentSum(data []byte, buildID string) uint64 {
	if buildID == "" {
		return xxhash.Sum64(data)
	}
	d := xxhash.New()
	id := []byte(buildID)
	for {
		before, after, found := bytes.Cut(data, id)
		d.Write(before)
		if !found {
			return d.Sum64()
		}
		data = after
	}
}

func (b *Builder) dest(rel string) string {
	return filepath.Join(b.opts.OutDir, filepath.FromSlash(rel))
}

func (b *Builder) writeOne(rel, dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}

	if !b.opts.Compress || !compressExts[path.Ext(rel)] {
		return nil
	}
	compressed, err := compress(data)
	if err != nil {
		return fmt.Errorf("compress %s: %w", rel, err)
	}
	if err := os.WriteFile(dst+".br", compressed, 0o644); err != nil {
		return fmt.Errorf("write %s.br: %w", rel, err)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	w := brotli.NewWriterLevel(buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return pool.Clone(buf), nil
}

func removeOutput(p string) error {
	for _, name := range []string{p, p + ".br"} {
		if err := os.Remove(name); err != nil && !isNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
