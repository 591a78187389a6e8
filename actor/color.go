package actor

// Color is an 8-bit RGBA debug colour
type Color struct {
	R, G, B, A uint8
}

// Packed returns the colour as 0xAABBGGRR, i.e. bytes R, G, B, A in little-endian memory order
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

var (
	ColorStaticBox   = Color{R: 64, G: 200, B: 64, A: 255}
	ColorPushableBox = Color{R: 255, G: 160, B: 32, A: 255}
	ColorCarrierBox  = Color{R: 64, G: 160, B: 255, A: 255}
	ColorMesh        = Color{R: 180, G: 180, B: 180, A: 255}
)
