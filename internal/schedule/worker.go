// worker.go - Fester Worker-Pool fuer das Kachel-Rendering
//
// Jeder Worker popt wiederholt eine Kachel von der JobQueue, verfolgt
// alle samplesPerPixel*tileWidth*tileHeight Strahlen hinein und merged
// seinen TileBuffer genau einmal. Pro-Worker-Zustand (RNG-Seed,
// Pixel-Sampler) lebt vollstaendig im Goroutine-Stack, es wird nichts
// geteilt ausser der JobQueue, dem ImagePlane-Merge-Lock und dem
// Fortschrittszaehler.
package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/imaging"
	"github.com/mantaray/manta/internal/path"
	"github.com/mantaray/manta/internal/sampler"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

// Options configures one render pass's worker pool.
type Options struct {
	WorkerCount     int
	SamplesPerPixel int
	TileSize        int
	Pattern         Pattern
	PathOptions     path.Options
	// DeterministicSeed, when non-nil, seeds every worker from
	// (*DeterministicSeed + workerIndex) instead of a fresh source.
	// With one worker the render is reproducible bit-for-bit across
	// runs. With several, tiles go to whichever worker pops them first,
	// so a pixel's seed and the merge order of shared tile borders can
	// differ between runs.
	DeterministicSeed *uint64
}

// progressReportInterval reports at most every 1000 pixels, plus once
// more on the final batch.
const progressReportInterval = 1000

// Run partitions plane into tiles per opts and drains them across a
// fixed worker pool, returning once every tile has been traced and
// merged. A panic inside any worker aborts the whole render (no
// retry), propagated through errgroup.
func Run(ctx context.Context, s *scene.Scene, cam *camera.Camera, plane *imaging.ImagePlane, opts Options) error {
	tiles := Tiles(plane.Width, plane.Height, opts.TileSize, opts.Pattern)
	jobs := make([]Job, len(tiles))
	for i, t := range tiles {
		jobs[i] = Job{ID: i, Tile: t}
	}
	queue := NewJobQueue(jobs)

	workerCount := opts.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
	}

	var pixelsDone int64
	totalPixels := int64(plane.Width * plane.Height)
	lastReport := int64(0)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workerCount; w++ {
		workerIndex := w
		g.Go(func() error {
			seed := workerSeed(opts.DeterministicSeed, workerIndex)
			return runWorker(ctx, workerIndex, seed, queue, s, cam, plane, opts, &pixelsDone, &lastReport, totalPixels)
		})
	}

	return g.Wait()
}

func workerSeed(deterministic *uint64, workerIndex int) uint64 {
	if deterministic != nil {
		return *deterministic + uint64(workerIndex)
	}
	return uint64(time.Now().UnixNano()) ^ uint64(workerIndex)*0x9E3779B97F4A7C15
}

func runWorker(ctx context.Context, workerIndex int, seed uint64, queue *JobQueue, s *scene.Scene, cam *camera.Camera, plane *imaging.ImagePlane, opts Options, pixelsDone, lastReport *int64, totalPixels int64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		job, ok := queue.Pop()
		if !ok {
			return nil
		}

		buf := imaging.NewTileBuffer(job.Tile, plane.Filter)
		tileWidth := job.Tile.X1 - job.Tile.X0
		tileHeight := job.Tile.Y1 - job.Tile.Y0

		for ty := 0; ty < tileHeight; ty++ {
			for tx := 0; tx < tileWidth; tx++ {
				px := job.Tile.X0 + tx
				py := job.Tile.Y0 + ty
				pixelIndex := py*plane.Width + px

				samp := sampler.NewPixelSampler(seed, pixelIndex, opts.SamplesPerPixel)
				for si := 0; si < opts.SamplesPerPixel; si++ {
					samp.StartSample(si)
					jitter := samp.Generate2D()
					ndcX := 2*((float32(px)+jitter.X)/float32(plane.Width)) - 1
					ndcY := 1 - 2*((float32(py)+jitter.Y)/float32(plane.Height))

					ray := cam.GenerateRay(vecmath.Vector2{X: ndcX, Y: ndcY}, samp.RNG())
					radiance := path.Li(s, ray, opts.PathOptions, samp)
					if !radiance.IsFinite() {
						continue
					}
					buf.Splat(vecmath.Vector2{X: float32(px) + 0.5, Y: float32(py) + 0.5}, radiance)
				}

				done := atomic.AddInt64(pixelsDone, 1)
				reportProgress(done, totalPixels, lastReport)
			}
		}

		plane.Merge(buf)
	}
}

// reportProgress logs at most every progressReportInterval pixels, and
// once more on the final interval.
func reportProgress(done, total int64, lastReport *int64) {
	last := atomic.LoadInt64(lastReport)
	if done-last < progressReportInterval && done != total {
		return
	}
	if !atomic.CompareAndSwapInt64(lastReport, last, done) {
		return
	}
	slog.Info("render progress", "pixels", done, "total", total, "percent", float64(done)/float64(total)*100)
}
