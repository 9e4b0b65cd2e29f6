package main

import "github.com/go-gl/mathgl/mgl32"

// frustumPlanes holds the six view-frustum planes extracted from a
// combined projection*view matrix, each as (a, b, c, d) with ax+by+cz+d >= 0
// on the inside half-space.
type frustumPlanes struct {
	planes [6]mgl32.Vec4
}

// newFrustumPlanes extracts the planes from vp using the standard
// Gribb/Hartmann row-combination method, then normalizes each.
func newFrustumPlanes(vp mgl32.Mat4) *frustumPlanes {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	f := &frustumPlanes{}
	f.planes[0] = r3.Add(r0) // left
	f.planes[1] = r3.Sub(r0) // right
	f.planes[2] = r3.Add(r1) // bottom
	f.planes[3] = r3.Sub(r1) // top
	f.planes[4] = r3.Add(r2) // near
	f.planes[5] = r3.Sub(r2) // far

	for i, p := range f.planes {
		n := mgl32.Vec3{p.X(), p.Y(), p.Z()}
		length := n.Len()
		if length == 0 {
			continue
		}
		f.planes[i] = p.Mul(1.0 / length)
	}
	return f
}

// Visible implements engine.Frustum: an AABB is rejected only when it
// lies entirely outside a plane's positive half-space, using the
// standard "most positive corner" test.
func (f *frustumPlanes) Visible(originX, originZ int, minY, maxY float32) bool {
	const chunkSize = 16
	minX, maxX := float32(originX), float32(originX+chunkSize)
	minZ, maxZ := float32(originZ), float32(originZ+chunkSize)

	for _, p := range f.planes {
		px := p.X()
		py := p.Y()
		pz := p.Z()

		var vx, vy, vz float32
		if px >= 0 {
			vx = maxX
		} else {
			vx = minX
		}
		if py >= 0 {
			vy = maxY
		} else {
			vy = minY
		}
		if pz >= 0 {
			vz = maxZ
		} else {
			vz = minZ
		}

		if px*vx+py*vy+pz*vz+p.W() < 0 {
			return false
		}
	}
	return true
}
