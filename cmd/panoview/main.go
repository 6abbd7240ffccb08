// Command panoview loads a local panorama manifest, streams the panoramas
// through a loading cache and writes the cluster overlay of one frame to a
// PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/pano"
	"github.com/gogpu/pano/cache"
	"github.com/gogpu/pano/overlay"
	"github.com/gogpu/pano/panorama"
	"github.com/gogpu/pano/provider/local"
	"github.com/gogpu/pano/render"
)

func main() {
	var (
		manifest   = flag.String("manifest", "manifest.yaml", "panorama manifest")
		collection = flag.String("collection", "", "collection id (empty for all)")
		cacheSize  = flag.Int("cache", cache.DefaultSize, "resident panorama limit")
		maxFace    = flag.Int("max-face", 0, "downscale faces to this size (0 keeps source size)")
		preMul     = flag.Bool("premultiplied", false, "descriptor rotation is pre-multiplied")
		cellSize   = flag.Float64("cell", 5, "cluster cell size in world units")
		width      = flag.Int("width", 800, "image width")
		height     = flag.Int("height", 600, "image height")
		output     = flag.String("output", "overlay.png", "output file")
		shaper     = flag.String("shaper", "builtin", "text shaper: builtin or gotext")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		pano.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *shaper == "gotext" {
		text.SetShaper(text.NewGoTextShaper())
	}

	ctx := context.Background()

	provider, err := local.Open(*manifest)
	if err != nil {
		log.Fatalf("Failed to open manifest: %v", err)
	}

	device := render.NewSoftwareDevice()
	defer device.Destroy()

	scene := &sceneList{}
	factory := panorama.NewFactory(provider, scene, device, panorama.WithMaxFaceSize(*maxFace))
	coll, err := factory.Create(ctx, panorama.Filter{CollectionID: *collection}, mgl32.Ident4(), *preMul)
	if err != nil {
		log.Fatalf("Failed to create collection: %v", err)
	}
	defer coll.Dispose()
	if coll.Len() == 0 {
		log.Fatalf("No panoramas in %s", *manifest)
	}

	if _, err := coll.On(panorama.EventEntered, func(e *panorama.Entity) {
		slog.Info("entered panorama", "id", e.ID())
	}); err != nil {
		log.Fatal(err)
	}

	// Only the first panorama is shown; the rest stay evictable.
	var first *panorama.Entity
	for e := range coll.Entities() {
		first = e
		break
	}
	if first == nil {
		log.Fatalf("No panoramas in collection %q", *collection)
	}
	first.Visualization().SetVisible(true)

	residents := cache.New[*panorama.Entity](*cacheSize)
	for e := range coll.Entities() {
		if err := residents.Preload(ctx, e); err != nil {
			if errors.Is(err, pano.ErrResourceExhausted) {
				log.Fatalf("Cache too small: %v", err)
			}
			slog.Warn("preload failed", "id", e.ID(), "err", err)
		}
	}
	if err := coll.Emit(panorama.EventEntered, first); err != nil {
		log.Fatal(err)
	}

	st := residents.Stats()
	slog.Info("cache", "resident", st.Len, "capacity", st.Capacity,
		"evictions", st.Evictions, "failures", st.Failures, "meshes", len(scene.objects))

	if err := drawOverlay(coll, *cellSize, *width, *height, *output); err != nil {
		log.Fatalf("Failed to draw overlay: %v", err)
	}
	log.Printf("Overlay saved to %s (%dx%d)\n", *output, *width, *height)
}

func drawOverlay(coll *panorama.Collection, cell float64, width, height int, output string) error {
	clusters, center := bucket(coll.Icons(), cell)

	eye := center.Add(mgl32.Vec3{0, 15, 40})
	frame := overlay.Frame{
		Surface: &canvas{w: width, h: height, parent: &container{}},
		Camera: overlay.StaticCamera{
			ViewMatrix:       mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0}),
			ProjectionMatrix: mgl32.Perspective(mgl32.DegToRad(60), float32(width)/float32(height), 0.1, 1000),
		},
		Model: mgl32.Ident4(),
	}

	r := overlay.NewRenderer[string]()
	defer r.Dispose()
	r.UpdateClusters(clusters, frame)

	comp, err := overlay.NewCompositor(nil)
	if err != nil {
		return err
	}
	img, err := comp.Draw(r.Snapshot(), width, height)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// bucket groups icons by grid cell. It stands in for the host's clustering
// step.
func bucket(icons []*panorama.Icon, cell float64) ([]overlay.Cluster[string], mgl32.Vec3) {
	type acc struct {
		sum   mgl32.Vec3
		count int
	}
	var (
		order  []string
		cells  = make(map[string]*acc)
		center mgl32.Vec3
	)
	for _, icon := range icons {
		p := icon.Position
		center = center.Add(p)
		key := fmt.Sprintf("%d/%d/%d",
			int(math.Floor(float64(p.X())/cell)),
			int(math.Floor(float64(p.Y())/cell)),
			int(math.Floor(float64(p.Z())/cell)))
		a, ok := cells[key]
		if !ok {
			a = &acc{}
			cells[key] = a
			order = append(order, key)
		}
		a.sum = a.sum.Add(p)
		a.count++
	}
	if len(icons) > 0 {
		center = center.Mul(1 / float32(len(icons)))
	}

	clusters := make([]overlay.Cluster[string], 0, len(order))
	for _, key := range order {
		a := cells[key]
		clusters = append(clusters, overlay.Cluster[string]{
			Icon:      key,
			IsCluster: a.count > 1,
			Size:      a.count,
			Position:  a.sum.Mul(1 / float32(a.count)),
		})
	}
	return clusters, center
}

// sceneList collects the meshes registered by panoramas.
type sceneList struct {
	objects []any
}

func (s *sceneList) AddCustomObject(obj any) {
	s.objects = append(s.objects, obj)
}

func (s *sceneList) RemoveCustomObject(obj any) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// canvas is a headless render surface.
type canvas struct {
	w, h   int
	parent overlay.Container
}

func (c *canvas) Size() (int, int)          { return c.w, c.h }
func (c *canvas) Parent() overlay.Container { return c.parent }

type container struct {
	layers      []*overlay.Layer
	positioning overlay.Positioning
}

func (c *container) Prepend(l *overlay.Layer) { c.layers = append([]*overlay.Layer{l}, c.layers...) }
func (c *container) Remove(l *overlay.Layer) {
	for i, x := range c.layers {
		if x == l {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			return
		}
	}
}
func (c *container) Positioning() overlay.Positioning     { return c.positioning }
func (c *container) SetPositioning(p overlay.Positioning) { c.positioning = p }
