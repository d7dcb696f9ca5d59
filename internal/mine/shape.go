package mine

import (
	"math"

	"github.com/lucasvr/synthetic-mine-maker/internal/geom"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/sampler"
)

// BlockIndex addresses a block inside a shape. K grows downward.
type BlockIndex struct {
	I, J, K int
}

// Shape is a geological body made of equal cubic blocks.
type Shape struct {
	Origin    geom.Point
	BlockSize float64
	Extent    BlockIndex
	Blocks    []BlockIndex
}

// growShape sizes a shape from the samplers and grows it around seed.
func growShape(src random.Source, seed geom.Point, sizes sampler.Set, blockSize float64) *Shape {
	nx := blocksAlong(sizes.X.Sample(), blockSize)
	ny := blocksAlong(sizes.Y.Sample(), blockSize)
	nz := blocksAlong(sizes.Z.Sample(), blockSize)
	budget := nx * ny * nz

	origin := seed
	origin.Z += float64(nz/2) * blockSize

	s := &Shape{
		Origin:    origin,
		BlockSize: blockSize,
		Extent:    BlockIndex{I: nx, J: ny, K: nz},
		Blocks:    make([]BlockIndex, 0, budget),
	}

	pivotY := src.IntN(ny)
	pivotZ := src.IntN(nz)
	for i := 0; i < nx; i++ {
		yMin, yMax := window(src, pivotY, ny)
		for j := yMin; j < yMax; j++ {
			zMin, zMax := window(src, pivotZ, nz)
			for k := zMin; k < zMax; k++ {
				s.Blocks = append(s.Blocks, BlockIndex{I: i, J: j, K: k})
			}
		}
		if len(s.Blocks) >= budget {
			break
		}
	}
	return s
}

// window draws [lo, hi) with lo <= pivot < hi <= n.
func window(src random.Source, pivot, n int) (int, int) {
	lo := src.IntN(pivot + 1)
	hi := pivot + 1 + src.IntN(n-pivot)
	return lo, hi
}

func blocksAlong(meters, blockSize float64) int {
	size := math.Max(1, math.Ceil(meters))
	return int(math.Max(1, math.Ceil(size/blockSize)))
}

// Center returns the world position of block b.
func (s *Shape) Center(b BlockIndex) geom.Point {
	return s.Origin.Add(geom.Point{
		X: float64(b.I) * s.BlockSize,
		Y: float64(b.J) * s.BlockSize,
		Z: -float64(b.K) * s.BlockSize,
	})
}

// Surface returns every block face not shared with another block of the
// shape.
func (s *Shape) Surface() geom.PolyhedralSurface {
	occupied := make(map[BlockIndex]struct{}, len(s.Blocks))
	for _, b := range s.Blocks {
		occupied[b] = struct{}{}
	}
	// Same order as geom.Box faces: -x, +x, -y, +y, -z, +z.
	neighbours := [6]BlockIndex{
		{I: -1}, {I: 1}, {J: -1}, {J: 1}, {K: 1}, {K: -1},
	}

	var out geom.PolyhedralSurface
	for _, b := range s.Blocks {
		box := geom.Box(s.Center(b), s.BlockSize)
		for f, d := range neighbours {
			n := BlockIndex{I: b.I + d.I, J: b.J + d.J, K: b.K + d.K}
			if _, shared := occupied[n]; shared {
				continue
			}
			out = append(out, box[f])
		}
	}
	return out
}

// BlockModels returns one closed box per block.
func (s *Shape) BlockModels() []geom.PolyhedralSurface {
	out := make([]geom.PolyhedralSurface, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		out = append(out, geom.Box(s.Center(b), s.BlockSize))
	}
	return out
}
