package debug

// GroundGrid generates line vertices for a square grid on the plane y.
// The grid spans [-extent, extent] on X and Z with lines every step units;
// the two center lines are drawn in the axis colors.
func GroundGrid(extent, step, y float32) []LineVertex {
	if step <= 0 || extent <= 0 {
		return nil
	}

	gridColor := [3]float32{0.35, 0.35, 0.35}
	xAxis := [3]float32{0.8, 0.25, 0.25}
	zAxis := [3]float32{0.25, 0.25, 0.8}

	n := int(extent / step)
	vertices := make([]LineVertex, 0, (2*n+1)*4)

	for i := -n; i <= n; i++ {
		p := float32(i) * step

		color := gridColor
		if i == 0 {
			color = zAxis
		}
		vertices = append(vertices,
			LineVertex{Position: [3]float32{p, y, -extent}, Color: color},
			LineVertex{Position: [3]float32{p, y, extent}, Color: color},
		)

		if i == 0 {
			color = xAxis
		}
		vertices = append(vertices,
			LineVertex{Position: [3]float32{-extent, y, p}, Color: color},
			LineVertex{Position: [3]float32{extent, y, p}, Color: color},
		)
	}

	return vertices
}
