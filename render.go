package newton

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"
)

// maxFramePixels bounds the output buffer a single frame may allocate.
// Oversized requests fail the frame, not the worker.
const maxFramePixels = 1 << 25

// Frame is one finished render delivered to the consumer.
type Frame struct {
	Image *image.RGBA
	// FPS is the inverse of the wall-clock duration of this render.
	FPS float64
	// Params is the snapshot the frame was rendered from.
	Params Parameters
}

// Orbit is one finished orbit trace delivered to the consumer.
type Orbit struct {
	// Points holds the iterate sequence in pixel coordinates, inclusive of
	// the starting point.
	Points []image.Point
	FPS    float64
	Params Parameters
}

// Renderer is the CPU render scheduler: a single background worker that
// accepts a continuous stream of parameter snapshots and always renders the
// latest one. Submissions that arrive while a frame is in flight coalesce
// into a single-slot "next parameters" value, so backlog stays O(1)
// regardless of submission rate; superseded snapshots are silently dropped.
//
// Frames are delivered in the order their renders started, never partially
// written and never after Stop. The callbacks run on the worker goroutine
// and must be set before the first Submit.
type Renderer struct {
	// OnFrame receives every finished frame together with the achieved
	// frame rate.
	OnFrame func(Frame)
	// OnOrbit receives finished orbit traces for OrbitMode submissions.
	OnOrbit func(Orbit)
	// OnError receives per-frame failures (output buffer allocation
	// refused). The worker stays alive for the next submission. Optional.
	OnError func(error)

	// mu guards next, abort, and running. It is held only for slot and
	// flag swaps, never across kernel evaluation.
	mu      sync.Mutex
	cond    *sync.Cond
	next    *Parameters
	abort   bool
	running bool
	done    chan struct{}
}

// NewRenderer creates an idle renderer. The worker goroutine starts with the
// first Submit.
func NewRenderer() *Renderer {
	r := &Renderer{done: make(chan struct{})}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Submit stores params as the latest requested snapshot and wakes the
// worker, starting it if necessary. Submit never blocks and never fails; if
// a frame is in flight, the previous pending snapshot (if any) is replaced.
// Submissions after Stop are ignored.
func (r *Renderer) Submit(params Parameters) {
	snap := params.Snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abort {
		return
	}
	r.next = &snap
	if !r.running {
		r.running = true
		go r.loop()
	}
	r.cond.Signal()
}

// Stop requests a cooperative shutdown and waits for the worker to exit.
// An in-flight frame runs to completion but is not delivered; no callback
// fires after Stop returns. Stop is idempotent.
func (r *Renderer) Stop() {
	r.mu.Lock()
	r.abort = true
	started := r.running
	r.cond.Signal()
	r.mu.Unlock()
	if started {
		<-r.done
	}
}

// loop is the worker body: take-and-clear the pending snapshot, render it,
// deliver, repeat. With no snapshot pending the worker parks on the
// condition variable rather than spinning. The abort flag is checked only at
// frame boundaries; there is no mid-frame cancellation.
func (r *Renderer) loop() {
	defer close(r.done)
	for {
		r.mu.Lock()
		for r.next == nil && !r.abort {
			r.cond.Wait()
		}
		if r.abort {
			r.running = false
			r.mu.Unlock()
			return
		}
		current := *r.next
		r.next = nil
		r.mu.Unlock()

		started := time.Now()
		var (
			img    *image.RGBA
			points []image.Point
			err    error
		)
		if current.OrbitMode {
			points = Trace(current.OrbitStart, &current)
		} else {
			img, err = renderImage(&current)
		}
		elapsed := time.Since(started).Seconds()
		fps := 0.0
		if elapsed > 0 {
			fps = 1 / elapsed
		}

		r.mu.Lock()
		if r.abort {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()

		switch {
		case err != nil:
			if r.OnError != nil {
				r.OnError(err)
			}
		case current.OrbitMode:
			if r.OnOrbit != nil {
				r.OnOrbit(Orbit{Points: points, FPS: fps, Params: current})
			}
		default:
			if r.OnFrame != nil {
				r.OnFrame(Frame{Image: img, FPS: fps, Params: current})
			}
		}

		// Benchmark mode re-renders the same snapshot until something
		// newer is submitted.
		if current.Benchmark {
			r.mu.Lock()
			if r.next == nil && !r.abort {
				again := current
				r.next = &again
			}
			r.mu.Unlock()
		}
	}
}

// imageLine is the per-scanline work item: the target pixel row, the
// snapshot it is computed from, and the precomputed plane-Y coordinate of
// the row. Each line owns a disjoint pixel range, so completion order across
// lines does not matter.
type imageLine struct {
	pix    []uint8
	width  int
	zy     float64
	params *Parameters
}

// renderImage computes one full frame, fanning scanlines out across
// GOMAXPROCS workers unless the snapshot asks for single-threaded
// evaluation.
func renderImage(p *Parameters) (*image.RGBA, error) {
	size := p.RenderSize()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("newton: empty render size %dx%d", size.X, size.Y)
	}
	if size.X*size.Y > maxFramePixels {
		return nil, fmt.Errorf("newton: render size %dx%d exceeds pixel budget", size.X, size.Y)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	if p.Processor == ProcessorCPUSingle {
		for y := 0; y < size.Y; y++ {
			renderLine(newImageLine(img, y, size, p))
		}
		return img, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > size.Y {
		workers = size.Y
	}
	lines := make(chan imageLine)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for il := range lines {
				renderLine(il)
			}
		}()
	}
	for y := 0; y < size.Y; y++ {
		lines <- newImageLine(img, y, size, p)
	}
	close(lines)
	wg.Wait()
	return img, nil
}

func newImageLine(img *image.RGBA, y int, size image.Point, p *Parameters) imageLine {
	il := imageLine{
		pix:    img.Pix[y*img.Stride : y*img.Stride+size.X*4],
		width:  size.X,
		params: p,
	}
	if size.Y > 1 {
		il.zy = p.Limits.Top() - float64(y)*p.Limits.Height()/float64(size.Y-1)
	} else {
		il.zy = imag(p.Limits.Center())
	}
	return il
}

// renderLine evaluates the kernel for every pixel of one scanline.
// Unconverged pixels stay on the opaque black background.
func renderLine(il imageLine) {
	p := il.params
	left := p.Limits.Left()
	width := p.Limits.Width()
	div := float64(il.width - 1)
	if div <= 0 {
		div = 1
	}
	for x := 0; x < il.width; x++ {
		zx := left + float64(x)*width/div
		root, iterations := Iterate(complex(zx, il.zy), p)
		off := x * 4
		if root >= 0 {
			c := shade(p.Roots[root].Color, iterations).RGBA()
			il.pix[off+0] = c.R
			il.pix[off+1] = c.G
			il.pix[off+2] = c.B
			il.pix[off+3] = c.A
		} else {
			il.pix[off+0] = 0
			il.pix[off+1] = 0
			il.pix[off+2] = 0
			il.pix[off+3] = 0xff
		}
	}
}
